package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Vishu-0105/Library-Testing-System/pkg/activity"
	"github.com/Vishu-0105/Library-Testing-System/pkg/catalog"
	"github.com/Vishu-0105/Library-Testing-System/pkg/contact"
	"github.com/Vishu-0105/Library-Testing-System/pkg/dashboard"
	"github.com/Vishu-0105/Library-Testing-System/pkg/errors"
)

const systemVersion = "2.0.0"

// inquiryTypes lists the intake categories offered on the contact form
var inquiryTypes = []string{
	"General",
	"Book Request",
	"Technical Support",
	"Membership",
	"Research Assistance",
}

// home serves the landing summary. Every visit bumps the visit counter
// and is recorded.
func (s *Server) home(c *gin.Context) {
	s.counters.RecordVisit()
	s.recorder.Record(activity.ActionHomepageVisit, s.sessionUser(c), nil, c.ClientIP())

	counts, err := s.catalog.Counts()
	if err != nil {
		s.handleError(c, "Failed to load catalog summary", err)
		return
	}

	members, err := s.directory.Count()
	if err != nil {
		s.handleError(c, "Failed to load member count", err)
		return
	}

	summary := HomeSummary{
		TotalBooks:      counts.Total,
		AvailableBooks:  counts.Available,
		TotalCategories: counts.Categories,
		TotalUsers:      members,
		SystemStats:     s.counters.Snapshot(),
	}

	c.JSON(http.StatusOK, BaseResponse[HomeSummary]{
		Code:    http.StatusOK,
		Message: "Welcome to the Modern Library System",
		Data:    &summary,
	})
}

// getLoginForm describes the login form to clients
func (s *Server) getLoginForm(c *gin.Context) {
	c.JSON(http.StatusOK, SimpleResponse{
		Code:    http.StatusOK,
		Message: "Submit username and password to access the Modern Library System.",
	})
}

// login authenticates credentials and issues the session cookie. The
// redirect target depends on the access level: elevated accounts land on
// the admin dashboard.
func (s *Server) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request format",
			Error:   err.Error(),
		})
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Password = strings.TrimSpace(req.Password)
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Username and password are required for system access.",
		})
		return
	}

	state, err := s.auth.Authenticate(req.Username, req.Password, c.ClientIP(), req.RememberMe)
	if err != nil {
		s.handleError(c, "Authentication failed. Please verify your credentials and try again.", err)
		return
	}

	token, err := s.auth.IssueToken(state)
	if err != nil {
		s.handleError(c, "Failed to establish session", err)
		return
	}

	ttl := s.config.SessionTTL
	if state.Extended {
		ttl = s.config.ExtendedSessionTTL
	}
	c.SetCookie(sessionCookieName, token, int(ttl.Seconds()), "/", "", false, true)

	redirectTo := "/dashboard"
	if state.Elevated() {
		redirectTo = "/admin-dashboard"
	}

	result := LoginResult{
		Token:       token,
		RedirectTo:  redirectTo,
		Username:    state.Username,
		Role:        state.Role,
		Name:        state.Name,
		AccessLevel: state.AccessLevel.String(),
		LoginTime:   state.LoginTime,
	}

	c.JSON(http.StatusOK, BaseResponse[LoginResult]{
		Code:    http.StatusOK,
		Message: fmt.Sprintf("Welcome back, %s! Access granted to Modern Library System.", state.Name),
		Data:    &result,
	})
}

// logout clears the session cookie and records the event
func (s *Server) logout(c *gin.Context) {
	user := s.sessionUser(c)
	name := user
	if state := s.session(c); state != nil {
		name = state.Name
	}

	s.recorder.Record(activity.ActionLogout, user, nil, c.ClientIP())
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)

	c.JSON(http.StatusOK, SimpleResponse{
		Code:    http.StatusOK,
		Message: fmt.Sprintf("Session terminated successfully. Thank you for using Modern Library System, %s!", name),
	})
}

// getDashboard serves the per-user dashboard view
func (s *Server) getDashboard(c *gin.Context) {
	state := s.session(c)
	s.recorder.Record(activity.ActionDashboardAccess, state.Username, nil, c.ClientIP())

	view, err := s.dashboard.Summarize(state.Username)
	if err != nil {
		s.handleError(c, "Failed to build dashboard", err)
		return
	}

	c.JSON(http.StatusOK, BaseResponse[dashboard.View]{
		Code:    http.StatusOK,
		Message: "Dashboard retrieved successfully",
		Data:    view,
	})
}

// getAdminDashboard serves the elevated dashboard view
func (s *Server) getAdminDashboard(c *gin.Context) {
	state := s.session(c)
	s.recorder.Record(activity.ActionAdminDashboard, state.Username, nil, c.ClientIP())

	view, err := s.dashboard.AdminSummary()
	if err != nil {
		s.handleError(c, "Failed to build admin dashboard", err)
		return
	}

	c.JSON(http.StatusOK, BaseResponse[dashboard.AdminView]{
		Code:    http.StatusOK,
		Message: "Admin dashboard retrieved successfully",
		Data:    view,
	})
}

// getCatalog lists the catalog with optional query-string filters. The
// GET form has no search side effects.
func (s *Server) getCatalog(c *gin.Context) {
	s.serveCatalog(c, c.Query("search"), c.Query("category"), c.Query("availability"), false)
}

// searchCatalog applies the posted filters, bumps the search counter and
// records the search.
func (s *Server) searchCatalog(c *gin.Context) {
	query := strings.TrimSpace(c.PostForm("search"))
	category := c.PostForm("category")
	availability := c.PostForm("availability")

	s.counters.RecordSearch()
	s.recorder.Record(activity.ActionCatalogSearch, s.sessionUser(c), map[string]interface{}{
		"query":    query,
		"category": category,
	}, c.ClientIP())

	s.serveCatalog(c, query, category, availability, true)
}

func (s *Server) serveCatalog(c *gin.Context, query, category, availability string, searched bool) {
	books, err := s.catalog.Search(query, category, catalog.ParseAvailability(availability))
	if err != nil {
		s.handleError(c, "Failed to search catalog", err)
		return
	}

	categories, err := s.catalog.Categories()
	if err != nil {
		s.handleError(c, "Failed to list categories", err)
		return
	}

	result := CatalogResult{
		Books:                books,
		ResultCount:          len(books),
		Categories:           categories,
		SearchQuery:          query,
		SelectedCategory:     category,
		SelectedAvailability: availability,
	}

	message := "Catalog retrieved successfully"
	if searched {
		message = fmt.Sprintf("Found %d matching books", len(books))
	}

	c.JSON(http.StatusOK, BaseResponse[CatalogResult]{
		Code:    http.StatusOK,
		Message: message,
		Data:    &result,
	})
}

// getContactMeta describes the intake form
func (s *Server) getContactMeta(c *gin.Context) {
	meta := ContactMeta{
		InquiryTypes: inquiryTypes,
		Priorities:   []string{contact.PriorityNormal, contact.PriorityHigh},
		ResponseTimes: map[string]string{
			contact.PriorityHigh:   contact.ResponseTimeHigh,
			contact.PriorityNormal: contact.ResponseTimeDefault,
		},
	}

	c.JSON(http.StatusOK, BaseResponse[ContactMeta]{
		Code:    http.StatusOK,
		Message: "Contact form metadata",
		Data:    &meta,
	})
}

// submitContact accepts an inquiry submission
func (s *Server) submitContact(c *gin.Context) {
	params := contact.SubmitParams{
		Name:        strings.TrimSpace(c.PostForm("name")),
		Email:       strings.TrimSpace(c.PostForm("email")),
		InquiryType: strings.TrimSpace(c.PostForm("inquiry_type")),
		Priority:    strings.TrimSpace(c.PostForm("priority")),
		Message:     strings.TrimSpace(c.PostForm("message")),
		User:        s.sessionUser(c),
		Origin:      c.ClientIP(),
	}
	if c.ContentType() == "application/json" {
		if err := c.ShouldBindJSON(&params); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    http.StatusBadRequest,
				Message: "Invalid request format",
				Error:   err.Error(),
			})
			return
		}
		params.User = s.sessionUser(c)
		params.Origin = c.ClientIP()
	}

	inquiry, err := s.contact.Submit(params)
	if err != nil {
		s.handleError(c, "Contact form submission failed", err)
		return
	}

	result := ContactResult{
		Inquiry: *inquiry,
		Confirmation: fmt.Sprintf(
			"Thank you %s! Your %s inquiry (Priority: %s) has been received. Response expected within %s.",
			inquiry.Name, strings.ToLower(inquiry.InquiryType), inquiry.Priority, inquiry.ResponseTime),
	}

	c.JSON(http.StatusOK, BaseResponse[ContactResult]{
		Code:    http.StatusOK,
		Message: "Inquiry received",
		Data:    &result,
	})
}

// about serves static system information
func (s *Server) about(c *gin.Context) {
	s.recorder.Record(activity.ActionAboutVisit, s.sessionUser(c), nil, c.ClientIP())

	info := AboutInfo{
		Version:          systemVersion,
		BuildDate:        "2025-10-15",
		FeaturesCount:    12,
		SupportedFormats: []string{"PDF", "EPUB", "MOBI", "HTML"},
		SecurityLevel:    "Enterprise Grade",
	}

	c.JSON(http.StatusOK, BaseResponse[AboutInfo]{
		Code:    http.StatusOK,
		Message: "About the Modern Library System",
		Data:    &info,
	})
}

// getProfile serves the signed-in user's profile and activity summary
func (s *Server) getProfile(c *gin.Context) {
	state := s.session(c)

	account, err := s.directory.GetByUsername(state.Username)
	if err != nil {
		s.handleError(c, "Failed to load profile", err)
		return
	}
	if account == nil {
		s.handleError(c, "Failed to load profile", errors.NewNotFoundError("account"))
		return
	}

	s.recorder.Record(activity.ActionProfileAccess, state.Username, nil, c.ClientIP())

	result := ProfileResult{
		Username:    account.Username,
		Role:        account.Role,
		Name:        account.Name,
		Email:       account.Email,
		MemberID:    account.MemberID,
		AccessLevel: account.AccessLevel.String(),
		Stats:       s.dashboard.Profile(state.Username),
	}

	c.JSON(http.StatusOK, BaseResponse[ProfileResult]{
		Code:    http.StatusOK,
		Message: "Profile retrieved successfully",
		Data:    &result,
	})
}

// getSystemStatus serves the comprehensive status aggregate
func (s *Server) getSystemStatus(c *gin.Context) {
	counts, err := s.catalog.Counts()
	if err != nil {
		s.handleError(c, "Failed to load catalog counts", err)
		return
	}

	members, err := s.directory.Count()
	if err != nil {
		s.handleError(c, "Failed to load member count", err)
		return
	}

	active, err := s.directory.CountActive()
	if err != nil {
		s.handleError(c, "Failed to load active member count", err)
		return
	}

	levels, err := s.directory.AccessLevels()
	if err != nil {
		s.handleError(c, "Failed to load access levels", err)
		return
	}

	status := SystemStatus{
		Status:       "operational",
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Version:      systemVersion,
		SystemHealth: "optimal",
		Database: DatabaseStatus{
			TotalBooks:      counts.Total,
			AvailableBooks:  counts.Available,
			TotalCategories: counts.Categories,
		},
		Users: UserStatus{
			TotalMembers:  members,
			ActiveMembers: active,
			AccessLevels:  levels,
		},
		Activity: s.counters.Snapshot(),
	}

	c.JSON(http.StatusOK, status)
}

// getBooks serves the raw catalog dump
func (s *Server) getBooks(c *gin.Context) {
	books, err := s.catalog.All()
	if err != nil {
		s.handleError(c, "Failed to list books", err)
		return
	}

	categories, err := s.catalog.Categories()
	if err != nil {
		s.handleError(c, "Failed to list categories", err)
		return
	}

	available := 0
	for _, book := range books {
		if book.Available {
			available++
		}
	}

	c.JSON(http.StatusOK, BooksResult{
		Books:          books,
		TotalCount:     len(books),
		AvailableCount: available,
		Categories:     categories,
	})
}

// healthCheck provides a health check endpoint
func (s *Server) healthCheck(c *gin.Context) {
	checks := map[string]string{
		"database": "ok",
		"activity": "ok",
	}
	status := "healthy"
	code := http.StatusOK

	if err := s.health(); err != nil {
		checks["database"] = err.Error()
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   systemVersion,
		Uptime:    time.Since(s.started).String(),
		Checks:    checks,
	})
}

// notFound records and serves the 404 view
func (s *Server) notFound(c *gin.Context) {
	s.recorder.Record(activity.ActionPageNotFound, s.sessionUser(c), map[string]interface{}{
		"url": c.Request.URL.Path,
	}, c.ClientIP())

	c.JSON(http.StatusNotFound, ErrorResponse{
		Code:    http.StatusNotFound,
		Message: "The page you are looking for does not exist.",
	})
}

// handleError maps domain errors onto HTTP responses
func (s *Server) handleError(c *gin.Context, message string, err error) {
	if verr := errors.GetValidationError(err); verr != nil {
		details := make([]string, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			details = append(details, f.Message)
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: message,
			Details: details,
		})
		return
	}

	status := http.StatusInternalServerError
	if lerr := errors.GetLibraryError(err); lerr != nil {
		switch lerr.Code {
		case errors.ErrCodeInvalidCredentials, errors.ErrCodeUnauthenticated,
			errors.ErrCodeTokenExpired, errors.ErrCodeInvalidToken:
			status = http.StatusUnauthorized
		case errors.ErrCodeForbidden:
			status = http.StatusForbidden
		case errors.ErrCodeValidation, errors.ErrCodeInvalidInput, errors.ErrCodeMissingField:
			status = http.StatusBadRequest
		case errors.ErrCodeNotFound:
			status = http.StatusNotFound
		}
	}

	if status == http.StatusInternalServerError {
		s.logger.Error(message, err, map[string]interface{}{
			"request_id": c.GetString("request_id"),
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
		})
	}

	c.JSON(status, ErrorResponse{
		Code:    status,
		Message: message,
		Error:   err.Error(),
	})
}
