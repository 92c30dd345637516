package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/acme-storefront/internal/carousel"
	"github.com/rogerio-castellano/acme-storefront/internal/cart"
	"github.com/rogerio-castellano/acme-storefront/internal/catalog"
	"github.com/rogerio-castellano/acme-storefront/internal/models"
	repo "github.com/rogerio-castellano/acme-storefront/internal/repo"
	"github.com/rogerio-castellano/acme-storefront/internal/session"
)

type pageData struct {
	Title        string
	Active       string
	Search       string
	Return       string
	CartOpen     bool
	CartOpenURL  string
	CartCloseURL string
	Cart         cartView
	Selection    *selectionView
}

type cartView struct {
	Lines      []cartLineView
	TotalItems int
	TotalPrice decimal.Decimal
}

type cartLineView struct {
	models.CartLineItem
	Index     int
	Increment int
	Decrement int
}

type selectionView struct {
	Product models.Product
	Size    string
	Color   string
	Ready   bool
}

type linkView struct {
	Name   string
	URL    string
	Active bool
}

type indicatorView struct {
	Index  int
	Active bool
}

type carouselView struct {
	Window     int
	Visible    []models.Product
	Indicators []indicatorView
}

type homePage struct {
	pageData
	Featured []models.Product
	Carousel carouselView
	Width    int
}

type shopPage struct {
	pageData
	Categories  []linkView
	SortOptions []linkView
	Products    []models.Product
	ClearSearch string
}

// HomePageHandler renders the featured grid and the carousel.
func HomePageHandler(w http.ResponseWriter, r *http.Request) {
	s, err := currentSession(r)
	if err != nil {
		http.Error(w, "could not load session", http.StatusInternalServerError)
		return
	}
	featured, items, err := homeProducts()
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}

	width := viewportWidth(r.URL.Query().Get("w"))
	ctrl := s.Carousel(len(items), width)
	indicators := make([]indicatorView, ctrl.Indicators())
	for i := range indicators {
		indicators[i] = indicatorView{Index: i, Active: i == ctrl.Index()}
	}

	base, err := newPageData(r, s, "Home", "home")
	if err != nil {
		http.Error(w, "could not load selection", http.StatusInternalServerError)
		return
	}
	render(w, "home", homePage{
		pageData: base,
		Featured: featured,
		Carousel: carouselView{
			Window:     ctrl.Window(),
			Visible:    visibleWindow(ctrl, items),
			Indicators: indicators,
		},
		Width: width,
	})
}

// ShopPageHandler renders the filtered and sorted catalog.
func ShopPageHandler(w http.ResponseWriter, r *http.Request) {
	s, err := currentSession(r)
	if err != nil {
		http.Error(w, "could not load session", http.StatusInternalServerError)
		return
	}

	q := r.URL.Query()
	category := catalog.NormalizeCategory(q.Get("category"))
	sortKey := catalog.ParseSortKey(q.Get("sort"))
	search := q.Get("q")

	products, _, err := productRepo.Filter(repo.ProductFilter{Category: category, Search: search, Sort: sortKey})
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}

	shopURL := func(cat string, sk catalog.SortKey, search string) string {
		v := url.Values{}
		if cat != catalog.AllCategories {
			v.Set("category", cat)
		}
		if search != "" {
			v.Set("q", search)
		}
		if sk != catalog.SortRelevance {
			v.Set("sort", string(sk))
		}
		if len(v) == 0 {
			return "/shop"
		}
		return "/shop?" + v.Encode()
	}

	var categories []linkView
	for _, c := range catalog.Categories() {
		categories = append(categories, linkView{Name: c.Name, URL: shopURL(c.Value, sortKey, search), Active: c.Value == category})
	}
	var sortOptions []linkView
	for _, o := range catalog.SortOptions() {
		sk := catalog.SortKey(o.Value)
		sortOptions = append(sortOptions, linkView{Name: o.Name, URL: shopURL(category, sk, search), Active: sk == sortKey})
	}

	base, err := newPageData(r, s, "Shop", "shop")
	if err != nil {
		http.Error(w, "could not load selection", http.StatusInternalServerError)
		return
	}
	base.Search = search
	render(w, "shop", shopPage{
		pageData:    base,
		Categories:  categories,
		SortOptions: sortOptions,
		Products:    products,
		ClearSearch: shopURL(category, sortKey, ""),
	})
}

// SelectProductFormHandler opens the product dialog.
func SelectProductFormHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.FormValue("product_id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}
	_, err = updateSession(r, func(s *session.Session) error {
		p, err := productRepo.GetByID(id)
		if err != nil {
			return err
		}
		s.SelectProduct(p)
		return nil
	})
	finishForm(w, r, err)
}

func ChooseSizeFormHandler(w http.ResponseWriter, r *http.Request) {
	size := r.FormValue("size")
	_, err := updateSession(r, func(s *session.Session) error {
		p, err := selectedProduct(s)
		if err != nil {
			return err
		}
		return s.ChooseSize(p, size)
	})
	finishForm(w, r, err)
}

func ChooseColorFormHandler(w http.ResponseWriter, r *http.Request) {
	color := r.FormValue("color")
	_, err := updateSession(r, func(s *session.Session) error {
		p, err := selectedProduct(s)
		if err != nil {
			return err
		}
		return s.ChooseColor(p, color)
	})
	finishForm(w, r, err)
}

func ClearSelectionFormHandler(w http.ResponseWriter, r *http.Request) {
	_, err := updateSession(r, func(s *session.Session) error {
		s.ClearSelection()
		return nil
	})
	finishForm(w, r, err)
}

// AddToCartFormHandler adds the current selection. Until both size and color
// are chosen it changes nothing.
func AddToCartFormHandler(w http.ResponseWriter, r *http.Request) {
	_, err := updateSession(r, func(s *session.Session) error {
		p, err := selectedProduct(s)
		if err != nil {
			return err
		}
		if !s.AddSelectionToCart(p) {
			log.Debug().Int("product_id", p.ID).Msg("add to cart ignored, options missing")
		}
		return nil
	})
	finishForm(w, r, err)
}

func UpdateCartFormHandler(w http.ResponseWriter, r *http.Request) {
	index, err1 := strconv.Atoi(r.FormValue("index"))
	quantity, err2 := strconv.Atoi(r.FormValue("quantity"))
	if err1 != nil || err2 != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	_, err := updateSession(r, func(s *session.Session) error {
		return s.Cart.UpdateQuantity(index, quantity)
	})
	finishForm(w, r, err)
}

func RemoveCartFormHandler(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.FormValue("index"))
	if err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	_, err = updateSession(r, func(s *session.Session) error {
		return s.Cart.Remove(index)
	})
	finishForm(w, r, err)
}

// SetCarouselFormHandler handles a click on a carousel indicator.
func SetCarouselFormHandler(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid carousel index", http.StatusBadRequest)
		return
	}
	items, err := carouselProducts()
	if err != nil {
		http.Error(w, "could not load carousel", http.StatusInternalServerError)
		return
	}
	width := viewportWidth(r.FormValue("w"))
	_, err = updateSession(r, func(s *session.Session) error {
		ctrl := s.Carousel(len(items), width)
		if err := ctrl.Set(index); err != nil {
			return err
		}
		s.SaveCarousel(ctrl, width)
		return nil
	})
	finishForm(w, r, err)
}

func selectedProduct(s *session.Session) (models.Product, error) {
	if s.Selection.ProductID == nil {
		return models.Product{}, session.ErrNoSelection
	}
	return productRepo.GetByID(*s.Selection.ProductID)
}

// finishForm maps a form action's error to a status, or redirects back to the
// page named by the "return" field.
func finishForm(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case err == nil:
		http.Redirect(w, r, safeReturn(r.FormValue("return"), "/"), http.StatusSeeOther)
	case errors.Is(err, repo.ErrProductNotFound), errors.Is(err, cart.ErrInvalidIndex):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, session.ErrNoSelection):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, session.ErrInvalidOption), errors.Is(err, carousel.ErrIndexOutOfRange):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("form action")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func newPageData(r *http.Request, s *session.Session, title, active string) (pageData, error) {
	q := r.URL.Query()
	cartOpen := q.Get("cart") == "open"

	withCart := func(open bool) string {
		v := r.URL.Query()
		if open {
			v.Set("cart", "open")
		} else {
			v.Del("cart")
		}
		if len(v) == 0 {
			return r.URL.Path
		}
		return r.URL.Path + "?" + v.Encode()
	}

	d := pageData{
		Title:        title,
		Active:       active,
		Return:       r.URL.RequestURI(),
		CartOpen:     cartOpen,
		CartOpenURL:  withCart(true),
		CartCloseURL: withCart(false),
		Cart:         toCartView(s.Cart),
	}

	p, err := lookupSelected(s.Selection)
	if err != nil {
		return d, err
	}
	if p != nil {
		d.Selection = &selectionView{
			Product: *p,
			Size:    s.Selection.Size,
			Color:   s.Selection.Color,
			Ready:   s.Selection.Ready(),
		}
	}
	return d, nil
}

func toCartView(c cart.Cart) cartView {
	lines := make([]cartLineView, len(c.Items))
	for i, it := range c.Items {
		lines[i] = cartLineView{
			CartLineItem: it,
			Index:        i,
			Increment:    it.Quantity + 1,
			Decrement:    it.Quantity - 1,
		}
	}
	return cartView{Lines: lines, TotalItems: c.TotalItems(), TotalPrice: c.TotalPrice()}
}

func render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("render page")
		http.Error(w, "could not render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Str("template", name).Msg("write page")
	}
}
