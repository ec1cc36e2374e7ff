package httpapi

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/VinothPrinzz/student-tutor-automation/internal/domain/question"
	"github.com/VinothPrinzz/student-tutor-automation/internal/domain/student"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

const defaultListLimit = 50

// Server exposes a read-only ops API over the record store. The review
// workflow itself never flows through HTTP; callbacks arrive over the
// chat gateways.
type Server struct {
	app      *fiber.App
	records  question.Repository
	students student.Repository
	log      *logrus.Logger
}

func NewServer(records question.Repository, students student.Repository, log *logrus.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(recover.New())

	s := &Server{app: app, records: records, students: students, log: log}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "OK",
			"service": "student-tutor-automation",
		})
	})

	api := s.app.Group("/api")
	api.Get("/records", s.listRecords)
	api.Get("/records/:id", s.getRecord)
	api.Get("/students/:platform/:id", s.getStudent)
	api.Get("/stats", s.stats)
}

func (s *Server) listRecords(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultListLimit)
	if limit < 1 || limit > 500 {
		limit = defaultListLimit
	}

	var (
		records []*question.Record
		err     error
	)
	if c.Query("status") == "pending" {
		records, err = s.records.ListPending(c.Context(), limit)
	} else {
		records, err = s.records.ListRecent(c.Context(), limit)
	}
	if err != nil {
		s.log.Errorf("Could not list records: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not list records"})
	}

	views := make([]recordView, 0, len(records))
	for _, rec := range records {
		views = append(views, viewOf(rec))
	}
	return c.JSON(fiber.Map{"records": views, "count": len(views)})
}

func (s *Server) getRecord(c *fiber.Ctx) error {
	rec, err := s.records.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "record not found"})
	}
	return c.JSON(viewOf(rec))
}

func (s *Server) getStudent(c *fiber.Ctx) error {
	platform, ok := platformFromParam(c.Params("platform"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown platform"})
	}
	userID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid platform user id"})
	}

	profile, err := s.students.GetByPlatformID(c.Context(), platform, userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "student not found"})
	}
	return c.JSON(studentViewOf(profile))
}

func platformFromParam(name string) (student.Platform, bool) {
	switch strings.ToLower(name) {
	case "telegram":
		return student.PlatformTelegram, true
	case "whatsapp":
		return student.PlatformWhatsApp, true
	default:
		return "", false
	}
}

func (s *Server) stats(c *fiber.Ctx) error {
	pending, err := s.records.CountPending(c.Context())
	if err != nil {
		s.log.Errorf("Could not count pending records: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not compute stats"})
	}
	approvedToday, err := s.records.CountApprovedSince(c.Context(), time.Now().Add(-24*time.Hour))
	if err != nil {
		s.log.Errorf("Could not count approved records: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not compute stats"})
	}
	return c.JSON(fiber.Map{
		"pending_review":    pending,
		"approved_last_24h": approvedToday,
	})
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

type studentView struct {
	ID             int64   `json:"id"`
	Platform       string  `json:"platform"`
	PlatformUserID int64   `json:"platform_user_id"`
	FirstName      string  `json:"first_name"`
	LastName       *string `json:"last_name,omitempty"`
	QuestionsAsked int     `json:"questions_asked"`
	LastSeenAt     string  `json:"last_seen_at"`
	CreatedAt      string  `json:"created_at"`
}

func studentViewOf(p *student.Profile) studentView {
	v := studentView{
		ID:             p.ID,
		Platform:       string(p.Platform),
		PlatformUserID: p.PlatformUserID,
		FirstName:      p.FirstName,
		QuestionsAsked: p.QuestionsAsked,
		LastSeenAt:     p.LastSeenAt.UTC().Format(time.RFC3339),
		CreatedAt:      p.CreatedAt.UTC().Format(time.RFC3339),
	}
	if p.LastName.Valid {
		v.LastName = &p.LastName.String
	}
	return v
}

type recordView struct {
	ID           string  `json:"id"`
	StudentID    int64   `json:"student_id"`
	StudentName  string  `json:"student_name"`
	Question     string  `json:"question"`
	Answer       string  `json:"answer"`
	EditedAnswer *string `json:"edited_answer,omitempty"`
	IsApproved   bool    `json:"is_approved"`
	FromImage    bool    `json:"from_image"`
	ApprovedBy   *string `json:"approved_by,omitempty"`
	ApprovedAt   *string `json:"approved_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func viewOf(rec *question.Record) recordView {
	v := recordView{
		ID:          rec.ID,
		StudentID:   rec.StudentID,
		StudentName: rec.StudentName,
		Question:    rec.Question,
		Answer:      rec.Answer,
		IsApproved:  rec.IsApproved,
		FromImage:   rec.FromImage,
		CreatedAt:   rec.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   rec.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if rec.EditedAnswer.Valid {
		v.EditedAnswer = &rec.EditedAnswer.String
	}
	if rec.ApprovedBy.Valid {
		v.ApprovedBy = &rec.ApprovedBy.String
	}
	if rec.ApprovedAt.Valid {
		t := rec.ApprovedAt.Time.UTC().Format(time.RFC3339)
		v.ApprovedAt = &t
	}
	return v
}
