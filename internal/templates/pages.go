package templates

import (
	"html"

	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// HomeFile is the output name of the home page.
const HomeFile = "index.html"

// Page is a finished output file relative to the site root.
type Page struct {
	Path    string
	Content []byte
}

// RenderHome wraps the rendered home fragment in the Home skeleton.
func (s *Skeletons) RenderHome(fragment string) (Page, error) {
	out, err := s.Home.Substitute(map[string]string{PlaceholderHome: fragment})
	if err != nil {
		return Page{}, err
	}
	return Page{Path: HomeFile, Content: []byte(out)}, nil
}

// RenderPost wraps a rendered post fragment in the Post skeleton. The title
// is escaped here because it lands in <title> verbatim.
func (s *Skeletons) RenderPost(rec *post.Record, fragment string) (Page, error) {
	out, err := s.Post.Substitute(map[string]string{
		PlaceholderTitle:   html.EscapeString(rec.Title),
		PlaceholderArticle: fragment,
	})
	if err != nil {
		return Page{}, err
	}
	return Page{Path: rec.OutputFile(), Content: []byte(out)}, nil
}
