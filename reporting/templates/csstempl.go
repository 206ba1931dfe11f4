package templates

// CSStempl is our css template sheet
var CSStempl = `p {
  margin-bottom: 1.625em;
  font-family: 'Lucida Sans', Arial, sans-serif;
}

body {
  margin: 0;
  color: #222;
  font-family: 'Lucida Sans', Arial, sans-serif;
}

h1 {
  color: #000;
  font-family: 'Lato', sans-serif;
  font-size: 32px;
  font-weight: 300;
  line-height: 58px;
  margin: 0 0 24px;
}

h2 {
  font-family: 'Lato', sans-serif;
  font-weight: 400;
  margin: 36px 0 12px;
  border-bottom: 1px solid #ddd;
}

ul.nav {
  list-style-type: none;
  margin: 0;
  padding: 0;
  overflow: hidden;
  background-color: #000;
  font-family: "Arial", Helvetica, sans-serif;
}

ul.nav li {
  float: left;
  border-right: 1px solid #bbb;
}

ul.nav li:last-child {
  border-right: none;
}

ul.nav li a {
  display: block;
  color: white;
  text-align: center;
  padding: 14px 16px;
  text-decoration: none;
}

ul.nav li a:hover {
  background-color: #34C6CD;
}

.container {
  max-width: 1100px;
  margin: 0 auto;
  padding: 24px;
}

.info {
  margin: 10px 0px;
  padding: 12px;
  color: white;
  background-color: #333;
}

.split {
  display: flex;
  gap: 24px;
  align-items: flex-start;
}

.split .chart-pie {
  flex: 0 0 260px;
  max-width: 260px;
}

table {
  border-collapse: collapse;
  width: 100%;
}

th, td {
  text-align: left;
  padding: 8px;
}

th {
  background-color: #333;
  color: white;
}

tr:nth-child(even) {
  background-color: #f2f2f2
}

td.num {
  text-align: right;
  font-variant-numeric: tabular-nums;
}

.swatch {
  display: inline-block;
  width: 10px;
  height: 10px;
  margin-right: 8px;
}

.severity th {
  color: #000;
  text-align: center;
}

.severity td {
  font-size: 28px;
  text-align: center;
}

.attrs {
  color: #666;
  font-size: 13px;
}

.chart .grid {
  stroke: #e0e0e0;
  stroke-width: 1;
}

.chart .tick, .chart .legend, .chart .value {
  font-family: Tahoma, Arial, sans-serif;
  font-size: 12px;
  fill: #555;
}

footer {
  color: #999;
  font-size: 12px;
  text-align: center;
  padding: 24px;
}
`
