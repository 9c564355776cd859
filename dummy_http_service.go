/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package hospitalload

import (
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	DummyTokenPath = "/auth/realms/hospital-realm/protocol/openid-connect/token"
	DummyAPIPrefix = "/api/v1"
)

type Patient struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
}

type AppointmentResponse struct {
	ID              uuid.UUID `json:"id"`
	PatientFullName string    `json:"patientFullName"`
	StartTime       time.Time `json:"startTime"`
	Notes           string    `json:"notes"`
}

// ApiEnvelope wraps every api answer
type ApiEnvelope struct {
	Status    int         `json:"status"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Errors    []string    `json:"errors,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// DummyHospital is an in-memory hospital api with a password grant token endpoint.
// Forced statuses override normal behaviour, 0 restores it.
type DummyHospital struct {
	ClientID string
	Username string
	Password string
	// Sleep delays every api answer
	Sleep time.Duration

	searchStatus      int32
	appointmentStatus int32
	tokenStatus       int32
	tokensIssued      int64

	mu           sync.RWMutex
	tokens       map[string]struct{}
	patients     map[string]Patient
	appointments []AppointmentResponse
}

// NewDummyHospital seeds patients with random unique emails and appointments for random patients
func NewDummyHospital(patients, appointments int) *DummyHospital {
	d := &DummyHospital{
		ClientID: DefaultClientID,
		Username: DefaultUsername,
		Password: DefaultPassword,
		tokens:   make(map[string]struct{}),
		patients: make(map[string]Patient, patients),
	}
	seeded := make([]Patient, 0, patients)
	for i := 0; i < patients; i++ {
		p := Patient{
			ID:        uuid.New(),
			FirstName: fmt.Sprintf("First%d", i),
			LastName:  fmt.Sprintf("Last%d", i),
			Email:     uuid.New().String() + searchKeyDomain,
		}
		d.patients[p.Email] = p
		seeded = append(seeded, p)
	}
	if len(seeded) == 0 {
		return d
	}
	now := time.Now()
	for i := 0; i < appointments; i++ {
		p := seeded[rand.Intn(len(seeded))]
		d.appointments = append(d.appointments, AppointmentResponse{
			ID:              uuid.New(),
			PatientFullName: p.FirstName + " " + p.LastName,
			StartTime:       now.Add(time.Duration(1+rand.Intn(30)) * 24 * time.Hour),
			Notes:           fmt.Sprintf("appointment %d", i),
		})
	}
	return d
}

func (d *DummyHospital) SetSearchStatus(code int) {
	atomic.StoreInt32(&d.searchStatus, int32(code))
}

func (d *DummyHospital) SetAppointmentStatus(code int) {
	atomic.StoreInt32(&d.appointmentStatus, int32(code))
}

func (d *DummyHospital) SetTokenStatus(code int) {
	atomic.StoreInt32(&d.tokenStatus, int32(code))
}

// ExpireTokens invalidates all issued tokens
func (d *DummyHospital) ExpireTokens() {
	d.mu.Lock()
	d.tokens = make(map[string]struct{})
	d.mu.Unlock()
}

func (d *DummyHospital) TokensIssued() int64 {
	return atomic.LoadInt64(&d.tokensIssued)
}

func (d *DummyHospital) PatientEmails() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	emails := make([]string, 0, len(d.patients))
	for e := range d.patients {
		emails = append(emails, e)
	}
	return emails
}

func envelope(c *gin.Context, status int, msg string, data interface{}) {
	c.JSON(status, ApiEnvelope{
		Status:    status,
		Message:   msg,
		Data:      data,
		Timestamp: time.Now(),
	})
}

func (d *DummyHospital) issueToken(c *gin.Context) {
	if code := int(atomic.LoadInt32(&d.tokenStatus)); code != 0 {
		c.JSON(code, gin.H{"error": "forced", "error_description": http.StatusText(code)})
		return
	}
	if c.PostForm("grant_type") != "password" ||
		c.PostForm("client_id") != d.ClientID ||
		c.PostForm("username") != d.Username ||
		c.PostForm("password") != d.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_grant", "error_description": "Invalid user credentials"})
		return
	}
	tok := uuid.New().String()
	d.mu.Lock()
	d.tokens[tok] = struct{}{}
	d.mu.Unlock()
	atomic.AddInt64(&d.tokensIssued, 1)
	c.JSON(http.StatusOK, gin.H{
		"access_token": tok,
		"token_type":   "Bearer",
		"expires_in":   300,
	})
}

func (d *DummyHospital) authorize(c *gin.Context) {
	tok := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	d.mu.RLock()
	_, ok := d.tokens[tok]
	d.mu.RUnlock()
	if !ok {
		envelope(c, http.StatusUnauthorized, "Unauthorized access", nil)
		c.Abort()
		return
	}
	if d.Sleep > 0 {
		time.Sleep(d.Sleep)
	}
	c.Next()
}

func (d *DummyHospital) searchPatient(c *gin.Context) {
	if code := int(atomic.LoadInt32(&d.searchStatus)); code != 0 {
		envelope(c, code, http.StatusText(code), nil)
		return
	}
	email := c.Query("email")
	d.mu.RLock()
	p, ok := d.patients[email]
	d.mu.RUnlock()
	if !ok {
		envelope(c, http.StatusNotFound, "Patient not found with email: "+email, nil)
		return
	}
	envelope(c, http.StatusOK, "Patient found", p)
}

func (d *DummyHospital) listAppointments(c *gin.Context) {
	if code := int(atomic.LoadInt32(&d.appointmentStatus)); code != 0 {
		envelope(c, code, http.StatusText(code), nil)
		return
	}
	d.mu.RLock()
	list := d.appointments
	d.mu.RUnlock()
	envelope(c, http.StatusOK, "Report generated", list)
}

func (d *DummyHospital) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.POST(DummyTokenPath, d.issueToken)
	api := r.Group(DummyAPIPrefix, d.authorize)
	api.GET(SearchPath, d.searchPatient)
	api.GET(AppointmentsPath, d.listAppointments)
	return r
}

// nolint
func RunDummyHospital(target string, d *DummyHospital) *http.Server {
	srv := &http.Server{
		Addr:    target,
		Handler: d.Handler(),
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Print(err.Error())
		}
	}()
	return srv
}
