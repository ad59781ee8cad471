// Package render holds the swappable presentation layers of numview.
//
// Every renderer consumes the same typed view models from pkg/view, so a
// report looks the same whichever surface shows it:
//
//   - [term]: lipgloss styles and tables for the command line
//   - [html]: a self-contained page from embedded html/template files,
//     used by the web surface and by --html exports
//
// Charts are drawn by pkg/chart; renderers only place them.
package render
