package catalog

import (
	"html/template"
	"io"
	"math"
)

const (
	// MaxStars is the width of the rating scale.
	MaxStars = 5

	loadingMessage = "Loading products..."
	emptyMessage   = "No products available"
	sectionTitle   = "POPULAR PRODUCTS"
)

type slideView struct {
	ID     string
	Name   string
	Price  string
	Rating float64
	Image  string
	Stars  []bool
	Active bool
}

type pageView struct {
	Loading bool
	Title   string
	Loader  string
	Empty   string
	Error   string
	Slides  []slideView
}

var carouselTemplate = template.Must(template.New("carousel").Parse(`{{if .Loading}}<p class="loading">{{.Loader}}</p>
{{else}}<section id="trending">
  <p class="offer-title">{{.Title}}</p>
  {{with .Error}}<p class="error">{{.}}</p>
  {{end}}<div class="container">
{{range .Slides}}    <div class="trending-slide{{if .Active}} active{{end}}">
      <div class="trending-slide-img"><img src="{{.Image}}" alt="{{.Name}}"></div>
      <a href="/product/{{.ID}}"><div class="trending-slide-content">
        <h1 class="product-price">{{.Price}}</h1>
        <h2 class="product-name">{{.Name}}</h2>
        <h3 class="product-rating"><span>{{.Rating}}</span>{{range .Stars}}<i class="{{if .}}star{{else}}star-outline{{end}}"></i>{{end}}</h3>
      </div></a>
    </div>
{{else}}    <p class="empty">{{.Empty}}</p>
{{end}}  </div>
</section>
{{end}}`))

// Render writes the HTML fragment for state.
func Render(w io.Writer, state State) error {
	view := pageView{
		Loading: state.Loading,
		Title:   sectionTitle,
		Loader:  loadingMessage,
		Empty:   emptyMessage,
		Error:   state.Err,
		Slides:  make([]slideView, 0, len(state.Products)),
	}
	for i, p := range state.Products {
		slide := slideView{
			ID:     p.ID,
			Name:   p.Name,
			Price:  p.Price.String(),
			Rating: p.Rating,
			Stars:  Stars(p.Rating),
			Active: i == state.Active,
		}
		if len(p.Images) > 0 {
			slide.Image = p.Images[0].URL
		}
		view.Slides = append(view.Slides, slide)
	}
	return carouselTemplate.Execute(w, view)
}

// Render writes the current state of the carousel.
func (c *Carousel) Render(w io.Writer) error {
	return Render(w, c.State())
}

// Stars returns MaxStars flags, the first floor(rating) of them filled.
func Stars(rating float64) []bool {
	filled := 0
	if !math.IsNaN(rating) {
		filled = int(math.Floor(math.Max(0, math.Min(rating, MaxStars))))
	}
	stars := make([]bool, MaxStars)
	for i := 0; i < filled; i++ {
		stars[i] = true
	}
	return stars
}
