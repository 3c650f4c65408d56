package server

// uiScriptJS is served at /static/script.js. It keeps the view state in one
// object and redraws the DOM from it after every event, like view.Render.
const uiScriptJS = uiSharedSnackbarJS + `
const state = {
  sidebarCollapsed: document.body.classList.contains('sidebar-collapsed'),
  iteration: 'all',
  tab: 0,
  filter: '',
};

function allChecked(boxes) {
  return Array.from(boxes).every((cb) => cb.checked);
}

function optionLabel(option, collapsed) {
  if (option.value === 'all') return collapsed ? 'All' : 'All Iterations';
  const num = option.getAttribute('data-iteration-num');
  if (!num) return option.textContent;
  return collapsed ? num : 'Iteration ' + num;
}

function render() {
  document.body.classList.toggle('sidebar-collapsed', state.sidebarCollapsed);

  const select = document.getElementById('iterationSelection');
  if (select) {
    Array.from(select.options).forEach((o) => {
      o.textContent = optionLabel(o, state.sidebarCollapsed);
    });
    select.value = state.iteration;
  }
  document.querySelectorAll('.iteration-wrapper').forEach((w) => {
    const visible = state.iteration === 'all' || w.id === 'iteration-' + state.iteration;
    w.style.display = visible ? 'flex' : 'none';
  });

  const tables = document.querySelectorAll('.result-table-wrapper');
  const buttons = document.querySelectorAll('.result-table-button');
  tables.forEach((t, i) => { t.style.display = i === state.tab ? '' : 'none'; });
  buttons.forEach((b, i) => { b.classList.toggle('active', i === state.tab); });

  const selectAll = document.getElementById('selectAllCheckbox');
  if (selectAll) selectAll.checked = allChecked(document.querySelectorAll('.project-checkbox'));

  const needle = state.filter.toLowerCase();
  document.querySelectorAll('.selection-table tbody tr').forEach((row) => {
    const cell = row.getElementsByTagName('td')[1];
    if (!cell) return;
    const name = (cell.textContent || cell.innerText || '').toLowerCase();
    row.style.display = needle === '' || name.indexOf(needle) > -1 ? '' : 'none';
  });
}

function bindSidebar() {
  const toggle = document.getElementById('sidebar-toggle');
  if (!toggle) return;
  toggle.addEventListener('click', async () => {
    state.sidebarCollapsed = !state.sidebarCollapsed;
    render();
    try {
      const res = await fetch('/api/sidebar/toggle', {
        method: 'POST',
        headers: { 'Content-Type': 'application/json' },
      });
      if (!res.ok) throw new Error('status ' + res.status);
      const data = await res.json();
      if (typeof data.collapsed === 'boolean' && data.collapsed !== state.sidebarCollapsed) {
        state.sidebarCollapsed = data.collapsed;
        render();
      }
    } catch (err) {
      state.sidebarCollapsed = !state.sidebarCollapsed;
      render();
      showSnackbar('Could not save the sidebar state: ' + err.message);
    }
  });
}

function bindIterations() {
  const select = document.getElementById('iterationSelection');
  if (!select) return;
  const initial = select.value || 'all';
  state.iteration = document.getElementById('iteration-' + initial) || initial === 'all' ? initial : 'all';
  select.addEventListener('change', () => {
    const value = select.value;
    if (value !== 'all' && !document.getElementById('iteration-' + value)) {
      showSnackbar('Unknown iteration ' + value);
      render();
      return;
    }
    state.iteration = value;
    render();
  });
}

function bindTabs() {
  document.querySelectorAll('.result-table-button').forEach((b, i) => {
    if (b.classList.contains('active')) state.tab = i;
    b.addEventListener('click', () => {
      state.tab = i;
      render();
    });
  });
}

function bindSelection() {
  const selectAll = document.getElementById('selectAllCheckbox');
  const boxes = document.querySelectorAll('.project-checkbox');
  if (selectAll) {
    selectAll.addEventListener('change', () => {
      boxes.forEach((cb) => { cb.checked = selectAll.checked; });
      render();
    });
  }
  boxes.forEach((cb) => cb.addEventListener('change', render));

  const search = document.getElementById('search-input');
  if (search) {
    state.filter = search.value || '';
    search.addEventListener('input', () => {
      state.filter = search.value;
      render();
    });
  }

  const form = document.getElementById('projectSelection');
  if (!form) return;
  form.addEventListener('submit', async (event) => {
    event.preventDefault();
    const body = new URLSearchParams(new FormData(form));
    let res;
    try {
      res = await fetch('/solver', { method: 'POST', body: body });
    } catch (err) {
      showSnackbar('Could not reach the server: ' + err.message);
      return;
    }
    if (!res.ok) {
      showSnackbar('The server rejected the selection (status ' + res.status + ').');
      return;
    }
    window.location.reload();
  });
}

function bindDragScroll() {
  document.querySelectorAll('.iteration-table-wrapper').forEach((wrapper) => {
    let isDown = false;
    let startX = 0;
    let scrollLeft = 0;
    wrapper.addEventListener('mousedown', (e) => {
      isDown = true;
      wrapper.classList.add('active');
      startX = e.pageX - wrapper.offsetLeft;
      scrollLeft = wrapper.scrollLeft;
    });
    const release = () => {
      isDown = false;
      wrapper.classList.remove('active');
    };
    wrapper.addEventListener('mouseleave', release);
    wrapper.addEventListener('mouseup', release);
    wrapper.addEventListener('mousemove', (e) => {
      if (!isDown) return;
      e.preventDefault();
      const x = e.pageX - wrapper.offsetLeft;
      wrapper.scrollLeft = Math.max(0, scrollLeft - (x - startX) * 2);
    });
  });
}

// csvField quotes one cell the way export.Field does.
function csvField(text) {
  return '"' + String(text).replace(/[\r\n]/g, '').replace(/"/g, '""') + '"';
}

// sectionCSV serializes the tables of one iteration section. It returns ''
// when the section has no cells.
function sectionCSV(section) {
  let cells = 0;
  const tables = Array.from(section.querySelectorAll('.iteration-table-wrapper table')).map((table, i) => {
    const lines = [csvField(i === 0 ? 'Tableau' : 'Basic Solution')];
    table.querySelectorAll('tr').forEach((tr) => {
      const row = Array.from(tr.querySelectorAll('th, td')).map((c) => csvField(c.textContent));
      cells += row.length;
      lines.push(row.join(','));
    });
    return lines.join('\n') + '\n';
  });
  return cells === 0 ? '' : tables.join('\n');
}

function download(blob, name) {
  const href = URL.createObjectURL(blob);
  const link = document.createElement('a');
  link.href = href;
  link.download = name;
  document.body.appendChild(link);
  link.click();
  document.body.removeChild(link);
  URL.revokeObjectURL(href);
}

async function fetchExport(url) {
  const res = await fetch(url);
  if (!res.ok) throw new Error('status ' + res.status);
  const blob = await res.blob();
  const match = /filename="([^"]+)"/.exec(res.headers.get('Content-Disposition') || '');
  download(blob, match ? match[1] : 'iteration.csv');
}

function bindExport() {
  document.querySelectorAll('.export-button').forEach((btn) => {
    btn.addEventListener('click', async () => {
      const section = btn.closest('.iteration-wrapper');
      const count = section ? section.querySelector('.iteration-count') : null;
      const num = count ? (count.getAttribute('data-iteration') || count.textContent).trim() : '';
      const csv = section ? sectionCSV(section) : '';
      if (num !== '' && csv !== '') {
        download(new Blob([csv], { type: 'text/csv;charset=utf-8' }), 'Iteration_' + num + '_Data.csv');
        return;
      }
      const url = btn.getAttribute('data-export-url');
      if (!url) {
        showSnackbar('Nothing to export for this iteration.');
        return;
      }
      try {
        await fetchExport(url);
      } catch (err) {
        showSnackbar('Export failed: ' + err.message);
      }
    });
  });
}

document.addEventListener('DOMContentLoaded', () => {
  bindSidebar();
  bindIterations();
  bindTabs();
  bindSelection();
  bindDragScroll();
  bindExport();
  render();
});
`
