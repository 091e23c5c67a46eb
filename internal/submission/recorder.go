// Package submission records accepted signups.
package submission

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/goliatone/go-signupform/internal/logging"
	"github.com/goliatone/go-signupform/pkg/model"
)

// ErrIncomplete is returned when a record is missing one of the form fields.
var ErrIncomplete = errors.New("submission: incomplete values")

// Record is an accepted signup. Text fields hold the values exactly as the
// form accepted them; the password is only kept as a bcrypt hash.
type Record struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Recorder stores the most recent submissions in memory.
type Recorder struct {
	mu      sync.RWMutex
	records []Record
	keep    int
	cost    int
	logger  *zap.Logger
	now     func() time.Time
	newID   func() string
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithLogger sets the logger used for accepted submissions.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Recorder) {
		r.logger = logging.OrNop(logger)
	}
}

// WithKeep bounds the number of records retained. Zero disables retention.
func WithKeep(n int) Option {
	return func(r *Recorder) {
		if n >= 0 {
			r.keep = n
		}
	}
}

// WithBcryptCost sets the password hashing cost.
func WithBcryptCost(cost int) Option {
	return func(r *Recorder) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			r.cost = cost
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRecorder builds a recorder keeping the last 100 submissions.
func NewRecorder(options ...Option) *Recorder {
	r := &Recorder{
		keep:   100,
		cost:   bcrypt.DefaultCost,
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Record hashes the password and stores the submission.
func (r *Recorder) Record(ctx context.Context, values model.Values) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	for _, field := range model.Fields() {
		if _, ok := values[field]; !ok {
			return Record{}, fmt.Errorf("%w: missing %s", ErrIncomplete, field)
		}
	}

	hash, err := bcrypt.GenerateFromPassword(passwordDigest(values[model.FieldNamePassword]), r.cost)
	if err != nil {
		return Record{}, fmt.Errorf("submission: hash password: %w", err)
	}

	rec := Record{
		ID:           r.newID(),
		Name:         values[model.FieldNameName],
		Email:        values[model.FieldNameEmail],
		Phone:        values[model.FieldNamePhone],
		PasswordHash: hash,
		CreatedAt:    r.now().UTC(),
	}

	r.mu.Lock()
	if r.keep > 0 {
		r.records = append(r.records, rec)
		if over := len(r.records) - r.keep; over > 0 {
			r.records = append(r.records[:0:0], r.records[over:]...)
		}
	}
	r.mu.Unlock()

	r.logger.Info("signup submitted",
		zap.String("submission_id", rec.ID),
		zap.String("name", rec.Name),
		zap.String("email", rec.Email),
		zap.String("phone", rec.Phone),
	)
	return rec, nil
}

// List returns the retained records, oldest first.
func (r *Recorder) List() []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Verify reports whether password matches the hash stored in rec.
func Verify(rec Record, password string) bool {
	return bcrypt.CompareHashAndPassword(rec.PasswordHash, passwordDigest(password)) == nil
}

// passwordDigest is the bcrypt input for password. bcrypt reads at most 72
// bytes, so the password is folded into a base64 SHA-256 digest (44 bytes)
// first.
func passwordDigest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}
