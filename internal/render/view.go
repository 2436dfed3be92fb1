package render

import (
	"strconv"

	"poketimes/internal/models"
	"poketimes/internal/store"
	"poketimes/pkg/utils"
)

// Static page content.
const (
	DefaultBrand = "Poke' Times"
	EmptyMessage = "No posts to show"
	ImageSrc     = "assets/pokeball.png"
	ImageAlt     = "A Pokeball"
	CardClass    = "card"
)

// NavLink is a static navigation entry.
type NavLink struct {
	Label string
	Href  string
}

// NavLinks are the placeholder navigation targets.
var NavLinks = []NavLink{
	{Label: "Home", Href: "/"},
	{Label: "About", Href: "/about"},
	{Label: "Contact", Href: "/contact"},
}

var strs = utils.NewStringHelper()

// Renderer derives view trees. The zero value uses DefaultBrand.
type Renderer struct {
	Brand string
}

// View derives the page tree for state with the default brand.
func View(state store.State) *Node {
	return Renderer{}.View(state)
}

// View derives the page tree for state. It has no side effects; equal
// states produce equal trees.
func (r Renderer) View(state store.State) *Node {
	home := El("div",
		El("h4", TextNode("Home")).Class("center"),
		r.navBar(),
	).Class("container", "home")

	if state.HasPosts() {
		home.Child(viewPosts(state.Posts))
	} else {
		home.Child(El("div", TextNode(EmptyMessage)).Class("center"))
	}

	return El("div", home).Class("App")
}

func (r Renderer) brand() string {
	if r.Brand == "" {
		return DefaultBrand
	}

	return r.Brand
}

func (r Renderer) navBar() *Node {
	list := El("ul").Class("right")
	for _, link := range NavLinks {
		list.Child(El("li", El("a", TextNode(link.Label)).Attr("href", link.Href)))
	}

	return El("nav",
		El("div",
			El("a", TextNode(r.brand())).Class("brand-logo").Attr("href", "/"),
			list,
		).Class("container"),
	).Class("nav-wrapper", "red", "darken-3")
}

func viewPosts(posts []models.Post) *Node {
	list := El("div").Class("posts")
	for _, p := range posts {
		list.Child(viewCard(p))
	}

	return list
}

func viewCard(p models.Post) *Node {
	id := strconv.Itoa(p.ID)

	return El("div",
		El("img").Attr("src", ImageSrc).Attr("alt", ImageAlt),
		El("div",
			El("a",
				El("span", TextNode(p.Title)).Class("card-title", "red-text"),
			).Attr("href", p.Path()),
			El("p", TextNode(p.Body)),
		).Class("card-content"),
		El("div",
			actionForm("/actions/view/"+id, "View"),
			actionForm("/actions/delete/"+id, "Delete"),
		).Class("card-action"),
	).Class("post", CardClass).Attr("data-post-id", id)
}

func actionForm(action, label string) *Node {
	return El("form",
		El("button", TextNode(label)).Attr("type", "submit").Class("btn-flat"),
	).Attr("method", "post").Attr("action", action)
}

// Cards returns the post cards in tree order.
func Cards(root *Node) []*Node {
	return root.Find(func(n *Node) bool { return n.HasClass(CardClass) })
}
