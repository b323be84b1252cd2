package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/furniflow/erp-backend-go/internal/domain/attendance"
	"github.com/furniflow/erp-backend-go/internal/handler/http/middleware"
	"github.com/furniflow/erp-backend-go/internal/handler/http/response"
	"github.com/furniflow/erp-backend-go/internal/pkg/cron"
	"github.com/furniflow/erp-backend-go/internal/pkg/jwt"
	"github.com/furniflow/erp-backend-go/internal/pkg/sse"
)

const streamKeepalive = 30 * time.Second

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	LiveBoard(w http.ResponseWriter, r *http.Request)
	Calendar(w http.ResponseWriter, r *http.Request)
	StreamToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	jwtService        jwt.Service
	hub               *sse.Hub
	now               func() time.Time
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, jwtService jwt.Service, hub *sse.Hub) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		jwtService:        jwtService,
		hub:               hub,
		now:               time.Now,
	}
}

type clockFunc func(ctx context.Context, employeeID string, location attendance.LocationProvider) (attendance.ClockResponse, error)

// CheckIn handles POST /attendance/check-in. The body carries the device
// position, or permission_denied when the browser refused to share it.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.clock(w, r, "CheckIn", h.attendanceService.CheckIn)
}

func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	h.clock(w, r, "CheckOut", h.attendanceService.CheckOut)
}

func (h *attendanceHandlerImpl) clock(w http.ResponseWriter, r *http.Request, op string, fn clockFunc) {
	var req attendance.ClockRequest
	if !decodeJSON(w, r, &req, op) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := fn(r.Context(), req.EmployeeID, req.Location())
	if err != nil {
		slog.Warn(op+" rejected", "employee_id", req.EmployeeID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// LiveBoard handles GET /attendance/live
func (h *attendanceHandlerImpl) LiveBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.attendanceService.LiveBoard(r.Context(), middleware.BranchScope(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, board)
}

// Calendar handles GET /attendance/calendar?year=&month=, defaulting to the
// current month.
func (h *attendanceHandlerImpl) Calendar(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	req := attendance.CalendarRequest{
		BranchScope: middleware.BranchScope(r.Context()),
		Year:        queryInt(r, "year", now.Year()),
		Month:       time.Month(queryInt(r, "month", int(now.Month()))),
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	entries, err := h.attendanceService.MonthLogs(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, entries)
}

type streamTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// StreamToken issues the short-lived token the browser passes to Stream.
func (h *attendanceHandlerImpl) StreamToken(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFrom(r.Context())

	token, expiresIn, err := h.jwtService.GenerateSSEToken(claims.UserID, claims.BranchID)
	if err != nil {
		slog.Error("failed to generate stream token", "error", err)
		response.InternalServerError(w, "Failed to generate stream token")
		return
	}
	response.Success(w, streamTokenResponse{Token: token, ExpiresIn: expiresIn})
}

// Stream handles GET /attendance/live/stream?token=. It sends the current
// board, then every board pushed for the session branch.
func (h *attendanceHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		response.Unauthorized(w, "Missing token")
		return
	}
	userID, branchID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	board, err := h.attendanceService.LiveBoard(r.Context(), branchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(branchID)
	defer cleanup()

	slog.Debug("live board stream opened", "user_id", userID, "branch_id", branchID)
	writeEvent(w, sse.Event{Event: cron.LiveBoardEvent, Data: board})
	flusher.Flush()

	keepalive := time.NewTicker(streamKeepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			writeEvent(w, event)
			flusher.Flush()
		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%s}\n\n", strconv.FormatInt(h.now().Unix(), 10))
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, event sse.Event) {
	data, err := json.Marshal(event.Data)
	if err != nil {
		slog.Error("failed to encode stream event", "event", event.Event, "error", err)
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
}
