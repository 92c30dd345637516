package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/rogerio-castellano/acme-storefront/internal/carousel"
	"github.com/rogerio-castellano/acme-storefront/internal/models"
	"github.com/rogerio-castellano/acme-storefront/internal/session"
)

// GetCarouselHandler godoc
// @Summary Get the carousel state
// @Description Window size and indicator count depend on the viewport width hint
// @Tags carousel
// @Produce json
// @Param w query int false "Viewport width in CSS pixels"
// @Success 200 {object} CarouselResponse
// @Failure 500 {string} string "Internal error"
// @Router /api/carousel [get]
func GetCarouselHandler(w http.ResponseWriter, r *http.Request) {
	s, err := currentSession(r)
	if err != nil {
		http.Error(w, "could not load carousel", http.StatusInternalServerError)
		return
	}
	writeCarousel(w, r, s)
}

// SetCarouselHandler godoc
// @Summary Jump to a carousel position
// @Tags carousel
// @Accept json
// @Produce json
// @Param w query int false "Viewport width in CSS pixels"
// @Param body body CarouselSetRequest true "Indicator index"
// @Success 200 {object} CarouselResponse
// @Failure 400 {string} string "Index out of range"
// @Router /api/carousel [put]
func SetCarouselHandler(w http.ResponseWriter, r *http.Request) {
	var req CarouselSetRequest
	if err := readJSON(w, r, &req); err != nil || req.Index == nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	moveCarousel(w, r, func(c *carousel.Controller) error {
		return c.Set(*req.Index)
	})
}

// AdvanceCarouselHandler godoc
// @Summary Advance the carousel one step
// @Tags carousel
// @Produce json
// @Param w query int false "Viewport width in CSS pixels"
// @Success 200 {object} CarouselResponse
// @Router /api/carousel/advance [post]
func AdvanceCarouselHandler(w http.ResponseWriter, r *http.Request) {
	moveCarousel(w, r, func(c *carousel.Controller) error {
		c.Advance()
		return nil
	})
}

// StreamCarouselHandler godoc
// @Summary Stream carousel advances
// @Description Server-sent events. A "state" event is sent on connect, then a "carousel" event every interval.
// @Description The ticker stops when the client disconnects.
// @Tags carousel
// @Produce text/event-stream
// @Param w query int false "Viewport width in CSS pixels"
// @Success 200 {object} CarouselResponse
// @Router /api/carousel/stream [get]
func StreamCarouselHandler(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	s, err := currentSession(r)
	if err != nil {
		http.Error(w, "could not load carousel", http.StatusInternalServerError)
		return
	}
	items, err := carouselProducts()
	if err != nil {
		http.Error(w, "could not load carousel", http.StatusInternalServerError)
		return
	}
	width := viewportWidth(r.URL.Query().Get("w"))

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := writeEvent(w, "state", toCarouselResponse(s.Carousel(len(items), width), items)); err != nil {
		return
	}
	flusher.Flush()

	err = carousel.Run(r.Context(), carouselInterval, func() error {
		// Advance from the saved cursor, which indicator clicks may have moved.
		var ctrl *carousel.Controller
		if _, err := updateSession(r, func(s *session.Session) error {
			ctrl = s.Carousel(len(items), width)
			ctrl.Advance()
			s.SaveCarousel(ctrl, width)
			return nil
		}); err != nil {
			return fmt.Errorf("save carousel position: %w", err)
		}
		if err := writeEvent(w, "carousel", toCarouselResponse(ctrl, items)); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if err != nil && r.Context().Err() == nil {
		log.Warn().Err(err).Msg("carousel stream failed")
	}
	log.Debug().Str("session_id", session.IDFromContext(r.Context())).Msg("carousel stream closed")
}

func moveCarousel(w http.ResponseWriter, r *http.Request, move func(*carousel.Controller) error) {
	items, err := carouselProducts()
	if err != nil {
		http.Error(w, "could not load carousel", http.StatusInternalServerError)
		return
	}
	width := viewportWidth(r.URL.Query().Get("w"))

	var ctrl *carousel.Controller
	_, err = updateSession(r, func(s *session.Session) error {
		ctrl = s.Carousel(len(items), width)
		if err := move(ctrl); err != nil {
			return err
		}
		s.SaveCarousel(ctrl, width)
		return nil
	})
	switch {
	case errors.Is(err, carousel.ErrIndexOutOfRange):
		http.Error(w, "carousel index out of range", http.StatusBadRequest)
	case err != nil:
		http.Error(w, "could not update carousel", http.StatusInternalServerError)
	default:
		writeJSON(w, http.StatusOK, toCarouselResponse(ctrl, items))
	}
}

func writeCarousel(w http.ResponseWriter, r *http.Request, s *session.Session) {
	items, err := carouselProducts()
	if err != nil {
		http.Error(w, "could not load carousel", http.StatusInternalServerError)
		return
	}
	ctrl := s.Carousel(len(items), viewportWidth(r.URL.Query().Get("w")))
	writeJSON(w, http.StatusOK, toCarouselResponse(ctrl, items))
}

func carouselProducts() ([]models.Product, error) {
	return productRepo.GetByIDs(carouselIDs)
}

// visibleWindow is the slice of items shown at the controller's position.
func visibleWindow(ctrl *carousel.Controller, items []models.Product) []models.Product {
	start := min(ctrl.Index(), len(items))
	end := min(start+ctrl.Window(), len(items))
	return items[start:end]
}

func toCarouselResponse(ctrl *carousel.Controller, items []models.Product) CarouselResponse {
	return CarouselResponse{
		Index:      ctrl.Index(),
		Window:     ctrl.Window(),
		Indicators: ctrl.Indicators(),
		Total:      len(items),
		Visible:    toProductResponses(visibleWindow(ctrl, items)),
	}
}

func writeEvent(w http.ResponseWriter, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
	return err
}
