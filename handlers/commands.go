package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"llamabot/models"
	"llamabot/services"
)

type CommandsHTTPHandler struct {
	commandsService services.CommandsService
}

func NewCommandsHTTPHandler(commandsService services.CommandsService) *CommandsHTTPHandler {
	return &CommandsHTTPHandler{commandsService: commandsService}
}

type commandResponse struct {
	Command *models.Command `json:"command"`
}

type commandsListResponse struct {
	Commands []*models.Command `json:"commands"`
}

func (h *CommandsHTTPHandler) SetupEndpoints(router *mux.Router) {
	router.HandleFunc("/commands", h.HandleListCommands).Methods("GET")
	router.HandleFunc("/commands", h.HandleCreateCommand).Methods("POST")
	router.HandleFunc("/commands/name/{name}", h.HandleGetCommandByName).Methods("GET")
	router.HandleFunc("/commands/{id}", h.HandleGetCommand).Methods("GET")
	router.HandleFunc("/commands/{id}", h.HandleUpdateCommand).Methods("PATCH")
	router.HandleFunc("/commands/{id}", h.HandleDeleteCommand).Methods("DELETE")
	router.HandleFunc("/commands/{id}/execute", h.HandleExecuteCommand).Methods("POST")
}

func (h *CommandsHTTPHandler) HandleListCommands(w http.ResponseWriter, r *http.Request) {
	guildID, enabled := parseListFilters(r)

	commands, err := h.commandsService.ListCommands(r.Context(), guildID, enabled)
	if err != nil {
		writeDomainError(w, err, "failed to list commands")
		return
	}
	if commands == nil {
		commands = []*models.Command{}
	}

	writeJSONResponse(w, http.StatusOK, commandsListResponse{Commands: commands})
}

func (h *CommandsHTTPHandler) HandleGetCommand(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	maybeCommand, err := h.commandsService.GetCommandByID(r.Context(), vars["id"])
	if err != nil {
		writeDomainError(w, err, "failed to get command")
		return
	}
	if !maybeCommand.IsPresent() {
		writeJSONError(w, http.StatusNotFound, "command not found")
		return
	}

	writeJSONResponse(w, http.StatusOK, commandResponse{Command: maybeCommand.MustGet()})
}

// HandleGetCommandByName resolves a command name for a guild; the guild's
// own command shadows a global one of the same name.
func (h *CommandsHTTPHandler) HandleGetCommandByName(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	guildID, _ := parseListFilters(r)

	maybeCommand, err := h.commandsService.GetCommandByName(r.Context(), vars["name"], guildID)
	if err != nil {
		writeDomainError(w, err, "failed to get command by name")
		return
	}
	if !maybeCommand.IsPresent() {
		writeJSONError(w, http.StatusNotFound, "command not found")
		return
	}

	writeJSONResponse(w, http.StatusOK, commandResponse{Command: maybeCommand.MustGet()})
}

func (h *CommandsHTTPHandler) HandleCreateCommand(w http.ResponseWriter, r *http.Request) {
	var params models.CreateCommandParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	command, err := h.commandsService.CreateCommand(r.Context(), params)
	if err != nil {
		writeDomainError(w, err, "failed to create command")
		return
	}

	log.Printf("✅ Created command %s with name %q", command.ID, command.Name)
	writeJSONResponse(w, http.StatusCreated, commandResponse{Command: command})
}

func (h *CommandsHTTPHandler) HandleUpdateCommand(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var update models.CommandUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	command, err := h.commandsService.UpdateCommand(r.Context(), vars["id"], update)
	if err != nil {
		writeDomainError(w, err, "failed to update command")
		return
	}

	writeJSONResponse(w, http.StatusOK, commandResponse{Command: command})
}

func (h *CommandsHTTPHandler) HandleDeleteCommand(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.commandsService.DeleteCommand(r.Context(), vars["id"]); err != nil {
		writeDomainError(w, err, "failed to delete command")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleExecuteCommand invokes a command: enforces the enabled gate,
// increments the use counter atomically and returns the response text with
// the updated record.
func (h *CommandsHTTPHandler) HandleExecuteCommand(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	invocation, err := h.commandsService.InvokeCommand(r.Context(), vars["id"])
	if err != nil {
		writeDomainError(w, err, "failed to execute command")
		return
	}

	writeJSONResponse(w, http.StatusOK, invocation)
}
