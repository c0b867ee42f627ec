package upstream

import "fmt"

// Paths on the external voting API, relative to the configured base URL.
// Trailing slashes are significant: the upstream router redirects without
// them and the redirect drops POST bodies.
const (
	CategoriesPath   = "/categories/"
	VoteInitiatePath = "/vote/initiate/"
	VoteVerifyPath   = "/vote/verify/"
)

// CategoryPath returns the category-details path for an id.
func CategoryPath(id int) string {
	return fmt.Sprintf("/categories/%d/", id)
}

// CategoryNomineesPath returns the nominee-list path for a category id.
func CategoryNomineesPath(categoryID int) string {
	return fmt.Sprintf("/categories/%d/nominees/", categoryID)
}

// CategoryResultsPath returns the voting-results path for a category id.
func CategoryResultsPath(categoryID int) string {
	return fmt.Sprintf("/categories/%d/results/", categoryID)
}
