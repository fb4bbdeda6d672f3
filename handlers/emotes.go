package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"llamabot/models"
	"llamabot/services"
)

type EmotesHTTPHandler struct {
	emotesService  services.EmotesService
	matcherService services.MatcherService
}

func NewEmotesHTTPHandler(
	emotesService services.EmotesService,
	matcherService services.MatcherService,
) *EmotesHTTPHandler {
	return &EmotesHTTPHandler{
		emotesService:  emotesService,
		matcherService: matcherService,
	}
}

type CheckMessageRequest struct {
	Message string  `json:"message"`
	GuildID *string `json:"guildId"`
}

type emoteResponse struct {
	Emote *models.Emote `json:"emote"`
}

type emotesListResponse struct {
	Emotes []*models.Emote `json:"emotes"`
}

func (h *EmotesHTTPHandler) SetupEndpoints(router *mux.Router) {
	router.HandleFunc("/emotes", h.HandleListEmotes).Methods("GET")
	router.HandleFunc("/emotes", h.HandleCreateEmote).Methods("POST")
	router.HandleFunc("/emotes/check", h.HandleCheckMessage).Methods("POST")
	router.HandleFunc("/emotes/{id}", h.HandleGetEmote).Methods("GET")
	router.HandleFunc("/emotes/{id}", h.HandleUpdateEmote).Methods("PATCH")
	router.HandleFunc("/emotes/{id}", h.HandleDeleteEmote).Methods("DELETE")
}

func (h *EmotesHTTPHandler) HandleListEmotes(w http.ResponseWriter, r *http.Request) {
	guildID, enabled := parseListFilters(r)

	emotes, err := h.emotesService.ListEmotes(r.Context(), guildID, enabled)
	if err != nil {
		writeDomainError(w, err, "failed to list emotes")
		return
	}
	if emotes == nil {
		emotes = []*models.Emote{}
	}

	writeJSONResponse(w, http.StatusOK, emotesListResponse{Emotes: emotes})
}

func (h *EmotesHTTPHandler) HandleGetEmote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	maybeEmote, err := h.emotesService.GetEmoteByID(r.Context(), vars["id"])
	if err != nil {
		writeDomainError(w, err, "failed to get emote")
		return
	}
	if !maybeEmote.IsPresent() {
		writeJSONError(w, http.StatusNotFound, "emote not found")
		return
	}

	writeJSONResponse(w, http.StatusOK, emoteResponse{Emote: maybeEmote.MustGet()})
}

func (h *EmotesHTTPHandler) HandleCreateEmote(w http.ResponseWriter, r *http.Request) {
	var params models.CreateEmoteParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emote, err := h.emotesService.CreateEmote(r.Context(), params)
	if err != nil {
		writeDomainError(w, err, "failed to create emote")
		return
	}

	log.Printf("✅ Created emote %s with trigger %q", emote.ID, emote.Trigger)
	writeJSONResponse(w, http.StatusCreated, emoteResponse{Emote: emote})
}

func (h *EmotesHTTPHandler) HandleUpdateEmote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var update models.EmoteUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emote, err := h.emotesService.UpdateEmote(r.Context(), vars["id"], update)
	if err != nil {
		writeDomainError(w, err, "failed to update emote")
		return
	}

	writeJSONResponse(w, http.StatusOK, emoteResponse{Emote: emote})
}

func (h *EmotesHTTPHandler) HandleDeleteEmote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.emotesService.DeleteEmote(r.Context(), vars["id"]); err != nil {
		writeDomainError(w, err, "failed to delete emote")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleCheckMessage runs one message through the match engine and returns
// the fired emotes. An empty message is a bad request, not a match miss.
func (h *EmotesHTTPHandler) HandleCheckMessage(w http.ResponseWriter, r *http.Request) {
	var req CheckMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		writeJSONError(w, http.StatusBadRequest, "message is required")
		return
	}

	result, err := h.matcherService.MatchMessage(r.Context(), req.Message, req.GuildID)
	if err != nil {
		writeDomainError(w, err, "failed to check message")
		return
	}

	writeJSONResponse(w, http.StatusOK, result)
}
