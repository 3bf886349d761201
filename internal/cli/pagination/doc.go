// Package pagination holds the --sort, --limit, --offset, --page and
// --page-size handling shared by ecoplate list commands.
package pagination
