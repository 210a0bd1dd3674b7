package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// LoginRequest represents a student login request
type LoginRequest struct {
	NIM string `json:"nim" example:"2110511001"`
}

// LecturerLoginRequest represents a lecturer login request
type LecturerLoginRequest struct {
	Code     string `json:"code" example:"LEC-001"`
	Password string `json:"password" example:"secret"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	Token    string `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
	UserID   string `json:"user_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name     string `json:"name" example:"Budi Santoso"`
	UserType string `json:"user_type" example:"student"`
}

// SubmitAttendanceRequest represents an attendance submission
type SubmitAttendanceRequest struct {
	SessionID string    `json:"session_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Latitude  float64   `json:"latitude" example:"-6.2088"`
	Longitude float64   `json:"longitude" example:"106.8456"`
	FaceImage string    `json:"face_image,omitempty" example:"base64-encoded-jpeg"`
	Embedding []float64 `json:"embedding,omitempty"`
}

// SubmitAttendanceResponse represents an accepted attendance event
type SubmitAttendanceResponse struct {
	EventID        string  `json:"event_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Status         string  `json:"status" example:"Present"`
	DistanceMeters int     `json:"distance_meters" example:"12"`
	Message        string  `json:"message" example:"You are 12m from the classroom. Attendance allowed."`
	FaceConfidence float64 `json:"face_confidence" example:"0.93"`
	OccurredAt     string  `json:"occurred_at" example:"2026-03-09T08:05:00Z"`
}

// AttendanceEventResponse represents one attendance event in listings
type AttendanceEventResponse struct {
	EventID     string  `json:"event_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	StudentID   string  `json:"student_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	SessionID   string  `json:"session_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Status      string  `json:"status" example:"Present"`
	Latitude    float64 `json:"latitude" example:"-6.2088"`
	Longitude   float64 `json:"longitude" example:"106.8456"`
	FaceOutcome string  `json:"face_outcome" example:"Matched"`
	OccurredAt  string  `json:"occurred_at" example:"2026-03-09T08:05:00Z"`
}

// AttendanceListResponse wraps listed attendance events
type AttendanceListResponse struct {
	Data []AttendanceEventResponse `json:"data"`
}

// RegisterFaceResponse represents a completed face enrollment
type RegisterFaceResponse struct {
	ProfileID    string  `json:"profile_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	SamplesGiven int     `json:"samples_given" example:"5"`
	SamplesUsed  int     `json:"samples_used" example:"4"`
	Confidence   float64 `json:"confidence" example:"0.87"`
	UpdatedAt    string  `json:"updated_at" example:"2026-03-09T08:05:00Z"`
}

// CreateSessionRequest represents a new class session
type CreateSessionRequest struct {
	Code         string   `json:"code" example:"IF-101"`
	Name         string   `json:"name" example:"Algoritma dan Pemrograman"`
	Schedule     string   `json:"schedule" example:"Senin 08:00-09:40"`
	Latitude     *float64 `json:"latitude,omitempty" example:"-6.2088"`
	Longitude    *float64 `json:"longitude,omitempty" example:"106.8456"`
	RadiusMeters *float64 `json:"radius_meters,omitempty" example:"50"`
}

// SessionResponse represents a class session
type SessionResponse struct {
	ID           string  `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Code         string  `json:"code" example:"IF-101"`
	Name         string  `json:"name" example:"Algoritma dan Pemrograman"`
	Schedule     string  `json:"schedule" example:"Senin 08:00-09:40"`
	LecturerID   string  `json:"lecturer_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Latitude     float64 `json:"latitude" example:"-6.2088"`
	Longitude    float64 `json:"longitude" example:"106.8456"`
	RadiusMeters float64 `json:"radius_meters" example:"50"`
	CreatedAt    string  `json:"created_at" example:"2026-03-09T08:05:00Z"`
}

// SessionListResponse wraps listed sessions
type SessionListResponse struct {
	Data []SessionResponse `json:"data"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"VALIDATION_FAILED"`
	Message string `json:"message" example:"Request validation failed"`
}

// EmptyResponse represents no content response (204)
type EmptyResponse struct{}

// NewSwagger creates and configures the Swagger documentation
func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "Presensia API",
		Version:     "v1.0.0",
		Description: "Campus attendance API with geofence proximity checks and face-embedding verification",
		Host:        "localhost:3000",
		Path:        "/v1",
	})

	endpoints := []*endpoint.EndPoint{
		// POST /v1/auth/student/login
		endpoint.New(
			endpoint.POST,
			"/auth/student/login",
			endpoint.WithTags("Auth"),
			endpoint.WithSummary("Student login"),
			endpoint.WithDescription("Authenticates a student by NIM and issues a bearer token"),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(LoginResponse{}, "200", "Login successful"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "nim is required"}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: "INVALID_CREDENTIALS", Message: "Invalid credentials"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// POST /v1/auth/lecturer/login
		endpoint.New(
			endpoint.POST,
			"/auth/lecturer/login",
			endpoint.WithTags("Auth"),
			endpoint.WithSummary("Lecturer login"),
			endpoint.WithDescription("Authenticates a lecturer by code and password and issues a bearer token"),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(LoginResponse{}, "200", "Login successful"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "code and password are required"}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: "INVALID_CREDENTIALS", Message: "Invalid credentials"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// POST /v1/attendance
		endpoint.New(
			endpoint.POST,
			"/attendance",
			endpoint.WithTags("Attendance"),
			endpoint.WithSummary("Submit attendance"),
			endpoint.WithDescription("Marks attendance for the authenticated student after geofence and face verification. One accepted event per student, session and calendar day."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(SubmitAttendanceResponse{}, "201", "Attendance marked"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "OUT_OF_RANGE", Message: "You are 320m from the classroom. You must be within 50m to mark attendance."}, "400", "Outside geofence"),
				response.New(ErrorResponse{Code: "FACE_MISMATCH", Message: "Face verification failed"}, "400", "Face mismatch"),
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Authentication required"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "SESSION_NOT_FOUND", Message: "Class session not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "PROFILE_NOT_FOUND", Message: "No registered face for this student"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "ALREADY_MARKED", Message: "Attendance already marked for today"}, "409", "Conflict"),
				response.New(ErrorResponse{Code: "RATE_LIMIT_EXCEEDED", Message: "Rate limit exceeded, please try again later"}, "429", "Too Many Requests"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),

		// GET /v1/attendance
		endpoint.New(
			endpoint.GET,
			"/attendance",
			endpoint.WithTags("Attendance"),
			endpoint.WithSummary("List attendance events"),
			endpoint.WithDescription("Students list their own events; lecturers list a session's events"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("session_id", parameter.Query, parameter.WithDescription("Filter by class session UUID (required for lecturers)")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(AttendanceListResponse{}, "200", "Events retrieved"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "session_id is required"}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Authentication required"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),

		// POST /v1/faces/register
		endpoint.New(
			endpoint.POST,
			"/faces/register",
			endpoint.WithTags("Faces"),
			endpoint.WithSummary("Register the student's face profile"),
			endpoint.WithDescription("Builds the student's reference profile by averaging descriptors from the uploaded images. Re-registration overwrites the previous profile."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(RegisterFaceResponse{}, "201", "Face profile registered"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "at least one image is required"}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: "NO_FACE_DETECTED", Message: "No face detected in the submitted images"}, "400", "No usable face"),
				response.New(ErrorResponse{Code: "TOO_FEW_SAMPLES", Message: "Too few usable face samples for registration"}, "400", "Below quality bar"),
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Authentication required"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),

		// POST /v1/sessions
		endpoint.New(
			endpoint.POST,
			"/sessions",
			endpoint.WithTags("Sessions"),
			endpoint.WithSummary("Create a class session"),
			endpoint.WithDescription("Creates a class session with its geofence (lecturer only). Omitting the geofence applies the campus default."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(SessionResponse{}, "201", "Session created"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "code and name are required"}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Authentication required"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "FORBIDDEN", Message: "Insufficient privileges"}, "403", "Forbidden"),
				response.New(ErrorResponse{Code: "SESSION_CODE_EXISTS", Message: "Class code already exists"}, "409", "Conflict"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),

		// GET /v1/sessions
		endpoint.New(
			endpoint.GET,
			"/sessions",
			endpoint.WithTags("Sessions"),
			endpoint.WithSummary("List visible sessions"),
			endpoint.WithDescription("Students see enrolled sessions; lecturers see the sessions they teach"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(SessionListResponse{}, "200", "Sessions retrieved"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Authentication required"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),

		// GET /v1/sessions/:id
		endpoint.New(
			endpoint.GET,
			"/sessions/{id}",
			endpoint.WithTags("Sessions"),
			endpoint.WithSummary("Get a class session"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Session UUID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(SessionResponse{}, "200", "Session retrieved"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Authentication required"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "SESSION_NOT_FOUND", Message: "Class session not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),

		// POST /v1/sessions/:id/enroll
		endpoint.New(
			endpoint.POST,
			"/sessions/{id}/enroll",
			endpoint.WithTags("Sessions"),
			endpoint.WithSummary("Enroll in a class session"),
			endpoint.WithDescription("Enrolls the authenticated student in the session. Enrolling twice is a no-op."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Session UUID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EmptyResponse{}, "204", "Enrolled"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Authentication required"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "FORBIDDEN", Message: "Insufficient privileges"}, "403", "Forbidden"),
				response.New(ErrorResponse{Code: "SESSION_NOT_FOUND", Message: "Class session not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
