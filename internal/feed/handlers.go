package feed

import (
	"encoding/json"
	"net/http"
	"strconv"

	"socialfeed/internal/common"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// FeedHandlers exposes the feed subsystem over REST.
type FeedHandlers struct {
	FeedSvc FeedUsecase
	log     *logrus.Entry
}

func NewFeedHandlers(svc FeedUsecase) *FeedHandlers {
	return &FeedHandlers{
		FeedSvc: svc,
		log:     common.ComponentLogger("handlers"),
	}
}

// Register wires the routes. The fixed paths go first: mux matches in
// registration order, and /feed/preferences must not be swallowed by the
// /feed/{feedType} pattern.
func (h *FeedHandlers) Register(r *mux.Router) {
	r.HandleFunc("/feed/preferences", h.GetPreferences).Methods(http.MethodGet)
	r.HandleFunc("/feed/preferences", h.UpdatePreferences).Methods(http.MethodPut)
	r.HandleFunc("/feed/generate", h.Generate).Methods(http.MethodPost)
	r.HandleFunc("/feed/jobs/process", h.ProcessJobs).Methods(http.MethodPost)
	r.HandleFunc("/feed/jobs", h.SubmitJob).Methods(http.MethodPost)
	r.HandleFunc("/feed/cleanup", h.Cleanup).Methods(http.MethodPost)

	r.HandleFunc("/feed/events/post-created", h.PostCreated).Methods(http.MethodPost)
	r.HandleFunc("/feed/events/post-privacy", h.PostPrivacy).Methods(http.MethodPost)
	r.HandleFunc("/feed/events/post-engagement", h.PostEngagement).Methods(http.MethodPost)
	r.HandleFunc("/feed/events/friendship", h.Friendship).Methods(http.MethodPost)
	r.HandleFunc("/feed/events/user-privacy", h.UserPrivacy).Methods(http.MethodPost)

	r.HandleFunc("/feed/{feedType}", h.GetFeed).Methods(http.MethodGet)
}

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apiResponse{Success: false, Error: msg})
}

func (h *FeedHandlers) caller(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return 0, false
	}
	return userID, true
}

// requireAdmin gates the maintenance and internal event endpoints on the
// caller's user record.
func (h *FeedHandlers) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	userID, ok := h.caller(w, r)
	if !ok {
		return false
	}

	isAdmin, err := h.FeedSvc.IsAdmin(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "admin check failed")
		return false
	}
	if !isAdmin {
		writeError(w, http.StatusForbidden, "admin access required")
		return false
	}
	return true
}

func (h *FeedHandlers) GetFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}

	feedType, err := ParseFeedType(mux.Vars(r)["feedType"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid feed type")
		return
	}

	pageSize := 0
	if raw := r.Header.Get("X-Page-Size"); raw != "" {
		pageSize, err = strconv.Atoi(raw)
		if err != nil || pageSize < 0 {
			writeError(w, http.StatusBadRequest, "invalid page size")
			return
		}
	}
	cursor := r.Header.Get("X-Cursor")

	page, err := h.FeedSvc.GetFeed(r.Context(), userID, feedType, pageSize, cursor)
	if err != nil {
		h.log.WithError(err).Error("get feed failed")
		writeError(w, http.StatusInternalServerError, "failed to load feed")
		return
	}
	writeSuccess(w, page)
}

func (h *FeedHandlers) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}

	prefs, err := h.FeedSvc.GetPreferences(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load preferences")
		return
	}
	writeSuccess(w, prefs)
}

func (h *FeedHandlers) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}

	var prefs FeedPreferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	prefs.UserID = userID

	if err := h.FeedSvc.UpdatePreferences(r.Context(), &prefs); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeSuccess(w, prefs)
}

func (h *FeedHandlers) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req struct {
		FeedType string `json:"feedType"`
		PostID   int64  `json:"postId,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	feedType, err := ParseFeedType(req.FeedType)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid feed type")
		return
	}

	if err := h.FeedSvc.Generate(r.Context(), userID, feedType); err != nil {
		h.log.WithError(err).Error("manual generation failed")
		writeError(w, http.StatusInternalServerError, "generation failed")
		return
	}
	writeSuccess(w, map[string]interface{}{"feedType": feedType})
}

func (h *FeedHandlers) SubmitJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req JobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == 0 && len(req.AffectedUserIDs) == 0 {
		req.UserID = userID
	}

	jobID, err := h.FeedSvc.SubmitJob(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeSuccess(w, map[string]interface{}{"jobId": jobID})
}

func (h *FeedHandlers) ProcessJobs(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	processed, err := h.FeedSvc.ProcessJobsNow(r.Context())
	if err != nil {
		h.log.WithError(err).Error("forced drain failed")
		writeError(w, http.StatusInternalServerError, "job processing failed")
		return
	}
	writeSuccess(w, map[string]interface{}{"processed": processed})
}

func (h *FeedHandlers) Cleanup(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	if err := h.FeedSvc.CleanupNow(r.Context()); err != nil {
		h.log.WithError(err).Error("forced cleanup failed")
		writeError(w, http.StatusInternalServerError, "cleanup failed")
		return
	}
	writeSuccess(w, map[string]interface{}{"status": "cleanup complete"})
}

func (h *FeedHandlers) PostCreated(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req struct {
		PostID int64 `json:"postId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PostID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid post ID")
		return
	}

	if err := h.FeedSvc.HandlePostCreated(r.Context(), req.PostID); err != nil {
		h.log.WithError(err).Error("post-created reaction failed")
		writeError(w, http.StatusInternalServerError, "event handling failed")
		return
	}
	writeSuccess(w, nil)
}

func (h *FeedHandlers) PostPrivacy(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req struct {
		PostID  int64  `json:"postId"`
		Privacy string `json:"privacy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PostID <= 0 || req.Privacy == "" {
		writeError(w, http.StatusBadRequest, "post ID and privacy must be specified")
		return
	}

	if err := h.FeedSvc.HandlePostPrivacyChanged(r.Context(), req.PostID, req.Privacy); err != nil {
		h.log.WithError(err).Error("post-privacy reaction failed")
		writeError(w, http.StatusInternalServerError, "event handling failed")
		return
	}
	writeSuccess(w, nil)
}

func (h *FeedHandlers) PostEngagement(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req struct {
		PostID        int64 `json:"postId"`
		LikesDelta    int64 `json:"likesDelta"`
		CommentsDelta int64 `json:"commentsDelta"`
		SharesDelta   int64 `json:"sharesDelta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PostID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid post ID")
		return
	}

	if err := h.FeedSvc.HandlePostEngagement(r.Context(), req.PostID, req.LikesDelta, req.CommentsDelta, req.SharesDelta); err != nil {
		h.log.WithError(err).Error("engagement reaction failed")
		writeError(w, http.StatusInternalServerError, "event handling failed")
		return
	}
	writeSuccess(w, nil)
}

func (h *FeedHandlers) Friendship(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req struct {
		UserID       uint64 `json:"userId"`
		FriendUserID uint64 `json:"friendUserId"`
		Accepted     bool   `json:"accepted"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == 0 || req.FriendUserID == 0 {
		writeError(w, http.StatusBadRequest, "both user IDs must be specified")
		return
	}

	if err := h.FeedSvc.HandleFriendshipChanged(r.Context(), req.UserID, req.FriendUserID, req.Accepted); err != nil {
		h.log.WithError(err).Error("friendship reaction failed")
		writeError(w, http.StatusInternalServerError, "event handling failed")
		return
	}
	writeSuccess(w, nil)
}

func (h *FeedHandlers) UserPrivacy(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req struct {
		UserID uint64 `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == 0 {
		writeError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	if err := h.FeedSvc.HandleUserPrivacyChanged(r.Context(), req.UserID); err != nil {
		h.log.WithError(err).Error("user-privacy reaction failed")
		writeError(w, http.StatusInternalServerError, "event handling failed")
		return
	}
	writeSuccess(w, nil)
}
