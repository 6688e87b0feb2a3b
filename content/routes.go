package content

import (
	"errors"
	"path"
)

// RouteDescriptor pairs a URL path with the content id it serves. One is
// produced per post; the static-site builder consumes them to generate
// pages.
type RouteDescriptor struct {
	URLPath   string
	ContentID string
}

// EnumerateRoutes produces one descriptor per listed ref, with the URL path
// formed from the configured blog prefix and the post id. Posts that failed
// to list contribute to the returned error (joined, one per item) but do
// not suppress the routes of healthy posts.
func (s *Store) EnumerateRoutes() ([]RouteDescriptor, error) {
	var routes []RouteDescriptor
	var errs []error
	for ref, err := range s.Refs() {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		routes = append(routes, RouteDescriptor{
			URLPath:   path.Join(s.cfg.BlogPathPrefix, ref.ID),
			ContentID: ref.ID,
		})
	}
	return routes, errors.Join(errs...)
}
