package ports

// SearchPathPort supplies the ordered list of directories to index.
// Earlier entries win on resource name collisions.
type SearchPathPort interface {
	SearchPaths() ([]string, error)
}
