package db

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ht-932/MeltSortGrow/internal/lattice"
	"github.com/ht-932/MeltSortGrow/internal/monitoring"
	"github.com/ht-932/MeltSortGrow/internal/movement"
	"github.com/ht-932/MeltSortGrow/internal/msg"
	"github.com/ht-932/MeltSortGrow/internal/textfmt"
	"github.com/ht-932/MeltSortGrow/internal/timeutil"
)

// ErrPlanNotFound is returned when no plan has the requested id.
var ErrPlanNotFound = errors.New("plan not found")

// PlanRecord is the header row of an archived plan.
type PlanRecord struct {
	PlanID        string        `json:"plan_id"`
	Name          string        `json:"name"`
	Algorithm     string        `json:"algorithm"`
	LatticeSize   int           `json:"lattice_size"`
	ModuleCount   int           `json:"module_count"`
	MovementCount int           `json:"movement_count"`
	InitialLine   string        `json:"initial_line"`
	GoalLine      string        `json:"goal_line"`
	Duration      time.Duration `json:"duration_ns"`
	CreatedAt     time.Time     `json:"created_at"`
}

// ArchivedPlan is a plan read back in full.
type ArchivedPlan struct {
	PlanRecord
	Initial   *lattice.Lattice
	Goal      *lattice.Lattice
	Movements []movement.Movement
}

// PlanStore reads and writes archived plans.
type PlanStore struct {
	db    *DB
	clock timeutil.Clock
}

// NewPlanStore creates a PlanStore. A nil clock uses the wall clock.
func NewPlanStore(db *DB, clock timeutil.Clock) *PlanStore {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &PlanStore{db: db, clock: clock}
}

// Insert archives res under a new id and returns it. The header and every
// movement row are written in one transaction.
func (s *PlanStore) Insert(name string, res *msg.Result, elapsed time.Duration) (string, error) {
	initial, err := encodeLattice(res.Initial)
	if err != nil {
		return "", err
	}
	goal, err := encodeLattice(res.Goal)
	if err != nil {
		return "", err
	}

	id := uuid.New().String()
	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO plans (
			plan_id, name, algorithm, lattice_size, module_count, movement_count,
			initial_line, goal_line, initial_lattice, goal_lattice, duration_ns, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, name, res.Algorithm, res.Initial.Size(), res.Initial.Count(), res.Log.Len(),
		res.InitialLine.String(), res.GoalLine.String(), initial, goal,
		elapsed.Nanoseconds(), s.clock.Now().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("insert plan: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO plan_movements (
			plan_id, step, module_id, from_x, from_y, from_z, to_x, to_y, to_z, phase
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare movement insert: %w", err)
	}
	defer stmt.Close()

	for i, m := range res.Log.Movements() {
		fx, fy, fz := cellArgs(m.From)
		tox, toy, toz := cellArgs(m.To)
		if _, err := stmt.Exec(id, i+1, m.Module, fx, fy, fz, tox, toy, toz, m.Phase.String()); err != nil {
			return "", fmt.Errorf("insert movement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit plan %s: %w", id, err)
	}
	monitoring.Logf("archived plan %s (%d movements)", id, res.Log.Len())
	return id, nil
}

// List returns every plan header, newest first.
func (s *PlanStore) List() ([]*PlanRecord, error) {
	rows, err := s.db.Query(`
		SELECT plan_id, name, algorithm, lattice_size, module_count, movement_count,
		       initial_line, goal_line, duration_ns, created_at
		FROM plans
		ORDER BY created_at DESC, plan_id`)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var out []*PlanRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Get returns the plan with the given id. An id prefix of at least eight
// characters is accepted when it matches exactly one plan.
func (s *PlanStore) Get(id string) (*ArchivedPlan, error) {
	fullID, err := s.resolve(id)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRow(`
		SELECT plan_id, name, algorithm, lattice_size, module_count, movement_count,
		       initial_line, goal_line, duration_ns, created_at, initial_lattice, goal_lattice
		FROM plans WHERE plan_id = ?`, fullID)

	var rec PlanRecord
	var durationNs, createdAt int64
	var initialText, goalText string
	err = row.Scan(&rec.PlanID, &rec.Name, &rec.Algorithm, &rec.LatticeSize, &rec.ModuleCount,
		&rec.MovementCount, &rec.InitialLine, &rec.GoalLine, &durationNs, &createdAt,
		&initialText, &goalText)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("plan %s: %w", id, ErrPlanNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get plan %s: %w", id, err)
	}
	rec.Duration = time.Duration(durationNs)
	rec.CreatedAt = time.Unix(0, createdAt).UTC()

	plan := &ArchivedPlan{PlanRecord: rec}
	if plan.Initial, err = textfmt.DecodeLattice(strings.NewReader(initialText)); err != nil {
		return nil, fmt.Errorf("plan %s initial lattice: %w", fullID, err)
	}
	if plan.Goal, err = textfmt.DecodeLattice(strings.NewReader(goalText)); err != nil {
		return nil, fmt.Errorf("plan %s goal lattice: %w", fullID, err)
	}
	if plan.Movements, err = s.movements(fullID); err != nil {
		return nil, err
	}
	return plan, nil
}

// Delete removes a plan and its movements.
func (s *PlanStore) Delete(id string) error {
	fullID, err := s.resolve(id)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(`DELETE FROM plans WHERE plan_id = ?`, fullID); err != nil {
		return fmt.Errorf("delete plan %s: %w", fullID, err)
	}
	return nil
}

func (s *PlanStore) resolve(id string) (string, error) {
	if len(id) < 8 {
		return "", fmt.Errorf("plan id %q too short", id)
	}
	rows, err := s.db.Query(`SELECT plan_id FROM plans WHERE plan_id LIKE ? || '%' LIMIT 2`, id)
	if err != nil {
		return "", fmt.Errorf("resolve plan %s: %w", id, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var full string
		if err := rows.Scan(&full); err != nil {
			return "", err
		}
		ids = append(ids, full)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	switch len(ids) {
	case 0:
		return "", fmt.Errorf("plan %s: %w", id, ErrPlanNotFound)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("plan id %q is ambiguous", id)
	}
}

func (s *PlanStore) movements(id string) ([]movement.Movement, error) {
	rows, err := s.db.Query(`
		SELECT module_id, from_x, from_y, from_z, to_x, to_y, to_z, phase
		FROM plan_movements WHERE plan_id = ? ORDER BY step`, id)
	if err != nil {
		return nil, fmt.Errorf("query movements for %s: %w", id, err)
	}
	defer rows.Close()

	var out []movement.Movement
	for rows.Next() {
		var m movement.Movement
		var fx, fy, fz, tx, ty, tz sql.NullInt64
		var phase string
		if err := rows.Scan(&m.Module, &fx, &fy, &fz, &tx, &ty, &tz, &phase); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.From = positionFrom(fx, fy, fz)
		m.To = positionFrom(tx, ty, tz)
		if m.Phase, err = movement.ParsePhase(phase); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanRecord(rows *sql.Rows) (*PlanRecord, error) {
	var rec PlanRecord
	var durationNs, createdAt int64
	if err := rows.Scan(&rec.PlanID, &rec.Name, &rec.Algorithm, &rec.LatticeSize, &rec.ModuleCount,
		&rec.MovementCount, &rec.InitialLine, &rec.GoalLine, &durationNs, &createdAt); err != nil {
		return nil, fmt.Errorf("scan plan: %w", err)
	}
	rec.Duration = time.Duration(durationNs)
	rec.CreatedAt = time.Unix(0, createdAt).UTC()
	return &rec, nil
}

// cellArgs maps a position to three nullable columns; the holding bay is
// stored as NULLs.
func cellArgs(p lattice.Position) (x, y, z interface{}) {
	c, ok := p.Cell()
	if !ok {
		return nil, nil, nil
	}
	return c.X, c.Y, c.Z
}

func positionFrom(x, y, z sql.NullInt64) lattice.Position {
	if !x.Valid || !y.Valid || !z.Valid {
		return lattice.Holding
	}
	return lattice.At(lattice.C(int(x.Int64), int(y.Int64), int(z.Int64)))
}

func encodeLattice(l *lattice.Lattice) (string, error) {
	var buf bytes.Buffer
	if err := textfmt.EncodeLattice(&buf, l); err != nil {
		return "", fmt.Errorf("encode lattice: %w", err)
	}
	return buf.String(), nil
}
