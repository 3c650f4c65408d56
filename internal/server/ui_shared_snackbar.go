package server

const uiSharedSnackbarJS = `
function ensureSnackbarStyles() {
  if (document.getElementById('__greenSnackbarStyles')) return;
  const style = document.createElement('style');
  style.id = '__greenSnackbarStyles';
  style.textContent = [
    '#greenSnackbarHost{position:fixed;right:14px;bottom:14px;z-index:2500;display:flex;flex-direction:column;gap:10px;max-width:min(480px,92vw);pointer-events:none;}',
    '.green-snackbar{pointer-events:auto;display:flex;align-items:center;justify-content:space-between;gap:10px;background:#3a1c22;color:#f7eaec;border:1px solid #6b2f3a;border-radius:10px;padding:10px 12px;box-shadow:0 16px 32px rgba(20,8,10,.35);}',
    '.green-snackbar-msg{font-size:13px;line-height:1.25;word-break:break-word;}',
    '.green-snackbar-btn{font:inherit;font-size:12px;font-weight:600;padding:6px 8px;border-radius:7px;border:1px solid #c89aa2;background:transparent;color:#e7d2d6;cursor:pointer;}',
  ].join('');
  document.head.appendChild(style);
}

function snackbarHost() {
  ensureSnackbarStyles();
  let host = document.getElementById('greenSnackbarHost');
  if (host) return host;
  host = document.createElement('div');
  host.id = 'greenSnackbarHost';
  document.body.appendChild(host);
  return host;
}

function showSnackbar(message, timeoutMs) {
  const text = String(message || '').trim();
  if (!text) return;
  const host = snackbarHost();
  const item = document.createElement('div');
  item.className = 'green-snackbar';
  item.setAttribute('role', 'alert');
  const msg = document.createElement('div');
  msg.className = 'green-snackbar-msg';
  msg.textContent = text;
  item.appendChild(msg);

  const dismissBtn = document.createElement('button');
  dismissBtn.type = 'button';
  dismissBtn.className = 'green-snackbar-btn';
  dismissBtn.textContent = 'Dismiss';
  dismissBtn.onclick = () => {
    if (item.parentNode) item.parentNode.removeChild(item);
  };
  item.appendChild(dismissBtn);
  host.appendChild(item);

  const ttl = Math.max(1500, Number(timeoutMs || 8000));
  setTimeout(() => {
    if (item.parentNode) item.parentNode.removeChild(item);
  }, ttl);
}
`
