package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"shift-leave-bot/internal/models"
	"shift-leave-bot/internal/repository"
	"shift-leave-bot/internal/service"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Server - HTTP доступ к тем же операциям, что и бот
type Server struct {
	leave  *service.LeaveService
	audit  *service.AuditService
	roster *service.RosterService
}

func NewServer(leave *service.LeaveService, audit *service.AuditService, roster *service.RosterService) *Server {
	return &Server{leave: leave, audit: audit, roster: roster}
}

// leaveBody - тело заявки, даты в формате 2006-01-02
type leaveBody struct {
	EmployeeName string `json:"employee_name"`
	Shift        string `json:"shift"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
}

type employeeBody struct {
	Name  string `json:"name"`
	Shift string `json:"shift"`
}

type decisionResponse struct {
	Decision      *models.Decision `json:"decision"`
	AuditRecorded bool             `json:"audit_recorded"`
}

type cancelResponse struct {
	Result        *models.CancelResult `json:"result"`
	AuditRecorded bool                 `json:"audit_recorded"`
}

type workdayResponse struct {
	Shift   string `json:"shift"`
	Date    string `json:"date"`
	Workday bool   `json:"workday"`
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Debug("HTTP request")
	})
}

// Router собирает маршруты API
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(enableCORS)
	r.Use(logRequests)

	r.HandleFunc("/leave", s.requestLeave).Methods("POST", "OPTIONS")
	r.HandleFunc("/leave/cancel", s.cancelLeave).Methods("POST", "OPTIONS")
	r.HandleFunc("/workday/{shift}/{date}", s.workday).Methods("GET", "OPTIONS")
	r.HandleFunc("/history/{name}", s.history).Methods("GET", "OPTIONS")
	r.HandleFunc("/employees", s.employees).Methods("GET", "OPTIONS")
	r.HandleFunc("/employees", s.addEmployee).Methods("POST", "OPTIONS")

	return r
}

func (s *Server) requestLeave(w http.ResponseWriter, r *http.Request) {
	req, dateErr, err := decodeLeave(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var decision *models.Decision
	if dateErr != "" {
		decision, err = s.leave.RejectUnparsedDates(req, dateErr)
	} else {
		decision, err = s.leave.RequestLeave(req)
	}
	if decision == nil {
		logrus.WithError(err).Error("Leave request failed")
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, decisionResponse{
		Decision:      decision,
		AuditRecorded: !errors.Is(err, service.ErrAuditNotRecorded),
	})
}

func (s *Server) cancelLeave(w http.ResponseWriter, r *http.Request) {
	req, dateErr, err := decodeLeave(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if dateErr != "" {
		writeJSON(w, http.StatusOK, cancelResponse{
			Result:        s.leave.RejectUnparsedCancel(req, dateErr),
			AuditRecorded: true,
		})
		return
	}

	result, err := s.leave.CancelLeave(req)
	if result == nil {
		logrus.WithError(err).Error("Cancellation failed")
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, cancelResponse{
		Result:        result,
		AuditRecorded: !errors.Is(err, service.ErrAuditNotRecorded),
	})
}

func (s *Server) workday(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	date, err := time.Parse(models.DateLayout, vars["date"])
	if err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	working, err := s.leave.IsWorkday(vars["shift"], date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, workdayResponse{
		Shift:   models.ParseShift(vars["shift"]).String(),
		Date:    date.Format(models.DateLayout),
		Workday: working,
	})
}

func (s *Server) history(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if name == "" {
		http.Error(w, "Employee name is required", http.StatusBadRequest)
		return
	}

	records, err := s.audit.History(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

func (s *Server) employees(w http.ResponseWriter, r *http.Request) {
	employees, err := s.roster.Employees()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, employees)
}

func (s *Server) addEmployee(w http.ResponseWriter, r *http.Request) {
	var body employeeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	err := s.roster.AddEmployee(body.Name, body.Shift)
	switch {
	case errors.Is(err, repository.ErrEmployeeExists):
		http.Error(w, err.Error(), http.StatusConflict)
	case err != nil:
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		writeJSON(w, http.StatusCreated, body)
	}
}

// decodeLeave разбирает тело заявки. Ошибка возвращается только для
// неверного JSON; неразобранные даты описываются в dateErr, заявка
// при этом остается с нулевыми датами.
func decodeLeave(r *http.Request) (req models.LeaveRequest, dateErr string, err error) {
	var body leaveBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return models.LeaveRequest{}, "", fmt.Errorf("invalid JSON body")
	}

	req = models.LeaveRequest{
		EmployeeName: body.EmployeeName,
		Shift:        body.Shift,
	}

	if req.StartDate, err = time.Parse(models.DateLayout, body.StartDate); err != nil {
		return models.LeaveRequest{EmployeeName: req.EmployeeName, Shift: req.Shift},
			fmt.Sprintf("start_date %q must be YYYY-MM-DD", body.StartDate), nil
	}
	if req.EndDate, err = time.Parse(models.DateLayout, body.EndDate); err != nil {
		return models.LeaveRequest{EmployeeName: req.EmployeeName, Shift: req.Shift},
			fmt.Sprintf("end_date %q must be YYYY-MM-DD", body.EndDate), nil
	}
	return req, "", nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("Failed to encode response")
	}
}
