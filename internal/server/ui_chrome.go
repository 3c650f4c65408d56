package server

const uiPageChromeCSS = `
    :root {
      --bg: #f2f7f4;
      --bg2: #d9efe2;
      --card: #ffffff;
      --ink: #1f2a24;
      --muted: #5f6f67;
      --bad: #b23a48;
      --accent: #157f66;
      --line: #c4ddd0;
      --sidebar: 180px;
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      display: flex;
      font-family: "Avenir Next", "Segoe UI", sans-serif;
      color: var(--ink);
      background: radial-gradient(circle at 20% 0%, var(--bg2), var(--bg));
    }
    .sidebar {
      width: var(--sidebar);
      min-height: 100vh;
      padding: 12px;
      display: flex;
      flex-direction: column;
      gap: 8px;
      border-right: 1px solid var(--line);
      background: var(--card);
    }
    body.sidebar-collapsed { --sidebar: 56px; }
    body.sidebar-collapsed .nav-label { display: none; }
    main { flex: 1; max-width: 1100px; margin: 24px auto; padding: 0 16px; min-width: 0; }
    .card {
      background: var(--card);
      border: 1px solid var(--line);
      border-radius: 12px;
      padding: 16px;
      margin-bottom: 16px;
      box-shadow: 0 8px 24px rgba(21,127,102,.08);
    }
    .iteration-wrapper { flex-direction: column; }
    .iteration-header { display: flex; align-items: center; justify-content: space-between; }
    .toolbar { display: flex; gap: 12px; align-items: center; margin-bottom: 12px; }
    .table-scroll, .iteration-table-wrapper, .result-table-wrapper { overflow-x: auto; cursor: grab; }
    .iteration-table-wrapper.active { cursor: grabbing; }
    table { border-collapse: collapse; font-size: 13px; }
    th, td { border-bottom: 1px solid var(--line); padding: 6px 8px; text-align: right; white-space: nowrap; }
    th:first-child, td:first-child { text-align: left; }
    .muted { color: var(--muted); font-size: 13px; }
    .banner.bad { color: var(--bad); border-color: var(--bad); }
    a { color: var(--accent); text-decoration: none; }
    a:hover { text-decoration: underline; }
    .nav-link.active { font-weight: 700; }
    button,
    a.nav-btn {
      border: 1px solid var(--line);
      border-radius: 8px;
      padding: 8px 10px;
      font-size: 14px;
      line-height: 1.1;
      background: #ffffff;
      color: var(--accent);
      cursor: pointer;
    }
    button:hover:not(:disabled),
    a.nav-btn:hover {
      background: #f4fbf7;
      text-decoration: none;
    }
    button.active { background: var(--accent); color: #ffffff; }
    button:disabled {
      opacity: 0.65;
      cursor: default;
    }
`
