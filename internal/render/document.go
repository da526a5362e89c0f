package render

import "fmt"

// A4 page geometry in millimeters. The invoice root is pinned to these
// dimensions so on-screen and print layouts match pixel for pixel.
const (
	pageWidthMM  = 210
	pageHeightMM = 297
)

const printShell = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Invoice</title>
  <style>
    @page {
      size: %dmm %dmm;
      margin: 0;
    }
    * { box-sizing: border-box; }
    html, body {
      margin: 0;
      padding: 0;
      background: #ffffff;
      font-family: Georgia, "Times New Roman", serif;
      color: #111827;
    }
    .invoice {
      width: %dmm;
      height: %dmm;
      padding: 14mm;
      overflow: hidden;
    }
    .header {
      display: flex;
      justify-content: space-between;
      align-items: flex-start;
      border-bottom: 2px solid #111827;
      padding-bottom: 16px;
      margin-bottom: 24px;
    }
    .brand { display: flex; align-items: center; gap: 12px; }
    .brand img { max-height: 48px; }
    .meta { text-align: right; font-size: 14px; }
    .label {
      color: #6b7280;
      text-transform: uppercase;
      letter-spacing: 0.04em;
      font-size: 11px;
    }
    .section { margin-bottom: 24px; }
    table {
      width: 100%%;
      border-collapse: collapse;
      font-size: 14px;
    }
    th, td {
      padding: 10px;
      border-bottom: 1px solid #e5e7eb;
      text-align: left;
    }
    th {
      text-transform: uppercase;
      font-size: 11px;
      letter-spacing: 0.04em;
      color: #6b7280;
    }
    .totals {
      margin-top: 12px;
      text-align: right;
      font-size: 16px;
    }
    .totals strong { margin-left: 12px; }
    .footer {
      border-top: 1px solid #e5e7eb;
      padding-top: 16px;
      font-size: 12px;
      color: #6b7280;
    }
    .actions { margin-top: 24px; }
  </style>
</head>
<body>
%s
</body>
</html>
`

// WrapPrintShell embeds rendered invoice markup into the A4 print shell.
func WrapPrintShell(markup string) string {
	return fmt.Sprintf(printShell, pageWidthMM, pageHeightMM, pageWidthMM, pageHeightMM, markup)
}
