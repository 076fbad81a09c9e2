package cv

import (
	"log/slog"
	"net/http"

	"github.com/talentosprecato/Mari/pkg/handlers"
	"github.com/talentosprecato/Mari/pkg/routes"
)

// Handler exposes the Document Store over HTTP.
type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "cv"),
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/cv",
		Description: "CV document editing and save status",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Get},
			{Method: "PUT", Pattern: "", Handler: h.Load},
			{Method: "PUT", Pattern: "/fields/{field}", Handler: h.UpdateField},
			{Method: "PUT", Pattern: "/social-links", Handler: h.SetSocialLinks},
			{Method: "PUT", Pattern: "/sections", Handler: h.SetSectionOrder},
			{Method: "PUT", Pattern: "/styles/{section}", Handler: h.SetSectionStyle},
			{Method: "GET", Pattern: "/status", Handler: h.Status},
			{Method: "GET", Pattern: "/status/stream", Handler: h.StatusStream},
			{Method: "POST", Pattern: "/{collection}", Handler: h.AddItem},
			{Method: "PUT", Pattern: "/{collection}/{id}", Handler: h.UpdateItem},
			{Method: "DELETE", Pattern: "/{collection}/{id}", Handler: h.RemoveItem},
			{Method: "POST", Pattern: "/{collection}/reorder", Handler: h.ReorderItem},
		},
	}
}

type ValueRequest struct {
	Value string `json:"value"`
}

type SocialLinksRequest struct {
	Links []SocialLink `json:"links" validate:"dive"`
}

type SectionOrderRequest struct {
	Order []SectionID `json:"order" validate:"required"`
}

type ItemUpdateRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

type ReorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type AddItemResponse struct {
	ID string `json:"id"`
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.sys.Document())
}

func (h *Handler) Load(w http.ResponseWriter, r *http.Request) {
	doc, err := handlers.Bind[Document](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	EnsureIDs(&doc)
	h.sys.LoadDocument(doc)
	handlers.RespondJSON(w, http.StatusOK, h.sys.Document())
}

func (h *Handler) UpdateField(w http.ResponseWriter, r *http.Request) {
	field, err := ParseField(r.PathValue("field"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	req, err := handlers.Bind[ValueRequest](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	h.sys.UpdateField(field, req.Value)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SetSocialLinks(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.Bind[SocialLinksRequest](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	h.sys.SetSocialLinks(req.Links)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SetSectionOrder(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.Bind[SectionOrderRequest](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	h.sys.SetSectionOrder(req.Order)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SetSectionStyle(w http.ResponseWriter, r *http.Request) {
	section, err := ParseStylableSection(r.PathValue("section"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	style, err := handlers.Bind[SectionStyle](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if err := style.Validate(); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.sys.SetSectionStyle(section, style)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	c, err := ParseCollection(r.PathValue("collection"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, AddItemResponse{ID: h.sys.AddItem(c)})
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	c, err := ParseCollection(r.PathValue("collection"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	req, err := handlers.Bind[ItemUpdateRequest](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	field, err := ParseItemField(c, req.Field)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.sys.UpdateItem(c, r.PathValue("id"), field, req.Value)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, err := ParseCollection(r.PathValue("collection"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.sys.RemoveItem(c, r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ReorderItem(w http.ResponseWriter, r *http.Request) {
	c, err := ParseCollection(r.PathValue("collection"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	req, err := handlers.Bind[ReorderRequest](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	h.sys.ReorderItem(c, req.From, req.To)
	handlers.RespondJSON(w, http.StatusOK, h.sys.Document().IDs(c))
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.sys.Status())
}

// StatusStream sends the current status followed by every transition until
// the client disconnects.
func (h *Handler) StatusStream(w http.ResponseWriter, r *http.Request) {
	events := make(chan StatusEvent, 16)
	cancel := h.sys.Subscribe(func(ev StatusEvent) {
		select {
		case events <- ev:
		default:
		}
	})
	defer cancel()

	stream := handlers.NewEventStream(w)
	if err := stream.Send(h.sys.Status()); err != nil {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-events:
			if err := stream.Send(ev); err != nil {
				h.logger.Debug("status stream closed", "error", err)
				return
			}
		}
	}
}
