package misc

import (
	"fmt"
	"net/http"

	"github.com/2beens/stickynotes/internal/notes"
	"github.com/2beens/stickynotes/internal/telemetry/tracing"
	"github.com/2beens/stickynotes/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type notesCounter interface {
	List() []notes.Note
	Revision() uint64
}

type StatusResponse struct {
	Version        string       `json:"version"`
	StorageBackend string       `json:"storageBackend"`
	Revision       uint64       `json:"revision"`
	Counts         notes.Counts `json:"counts"`
}

type Handler struct {
	versionInfo    string
	storageBackend string
	store          notesCounter
}

func NewHandler(versionInfo, storageBackend string, store notesCounter) *Handler {
	return &Handler{
		versionInfo:    versionInfo,
		storageBackend: storageBackend,
		store:          store,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/myip", handler.handleGetMyIp).Methods("GET").Name("myip")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
	mainRouter.HandleFunc("/status", handler.handleStatus).Methods("GET").Name("status")
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (handler *Handler) handleGetMyIp(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.getMyIp")
	defer span.End()

	ip, err := pkg.ReadUserIP(r)
	if err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("failed to get user IP address: %s", err))
		log.Errorf("failed to get user IP address: %s", err)
		http.Error(w, "failed to get IP", http.StatusInternalServerError)
		return
	}

	span.SetAttributes(attribute.String("user.ip", ip))
	pkg.WriteTextResponseOK(w, ip)
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}

func (handler *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.status")
	defer span.End()

	pkg.WriteJSON(w, StatusResponse{
		Version:        handler.versionInfo,
		StorageBackend: handler.storageBackend,
		Revision:       handler.store.Revision(),
		Counts:         notes.Count(handler.store.List()),
	}, http.StatusOK)
}
