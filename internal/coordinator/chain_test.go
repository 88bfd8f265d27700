package coordinator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kavish/registry-harvester/internal/db"
	"github.com/kavish/registry-harvester/internal/extractor"
	"github.com/kavish/registry-harvester/internal/status"
)

func testCoordinator() *Coordinator {
	return &Coordinator{logger: log.New(io.Discard)}
}

func TestRunChainAllSuccess(t *testing.T) {
	c := testCoordinator()

	var writes []string
	step := func(name string) Step {
		return c.persistStep(name, func(context.Context) error {
			writes = append(writes, name)
			return nil
		})
	}

	code := runChain(context.Background(), status.OK, []Step{
		step("one"), step("two"), step("three"),
	})
	assert.Equal(t, status.OK, code)
	assert.Equal(t, []string{"one", "two", "three"}, writes)
}

func TestRunChainShortCircuits(t *testing.T) {
	c := testCoordinator()

	// Whichever step fails first, no later step writes and the final code is
	// the first failing code.
	for failAt := 0; failAt < 5; failAt++ {
		var writes []string
		steps := make([]Step, 5)
		for i := 0; i < 5; i++ {
			name := fmt.Sprintf("step-%d", i)
			fail := i == failAt
			steps[i] = c.persistStep(name, func(context.Context) error {
				if fail {
					return errors.New("write refused")
				}
				writes = append(writes, name)
				return nil
			})
		}

		code := runChain(context.Background(), status.OK, steps)
		assert.Equal(t, status.PersistenceFailed, code, "failAt=%d", failAt)
		require.Len(t, writes, failAt, "failAt=%d", failAt)
		for i, name := range writes {
			assert.Equal(t, fmt.Sprintf("step-%d", i), name)
		}
	}
}

func TestRunChainForwardsIncomingFailure(t *testing.T) {
	c := testCoordinator()

	var wrote bool
	steps := []Step{
		c.persistStep("only", func(context.Context) error {
			wrote = true
			return nil
		}),
	}

	code := runChain(context.Background(), status.CorruptRemoved, steps)
	assert.Equal(t, status.CorruptRemoved, code)
	assert.False(t, wrote)
}

func TestPersistStepDuplicateIsSuccess(t *testing.T) {
	c := testCoordinator()

	step := c.persistStep("dup", func(context.Context) error {
		return fmt.Errorf("insert: %w", db.ErrDuplicate)
	})
	assert.Equal(t, status.Accepted, step.Run(context.Background(), status.OK))
}

func TestSectionStepEmptyIsExplicitSuccess(t *testing.T) {
	c := testCoordinator()

	var wrote bool
	step := c.sectionStep("empty section", true, func(context.Context) error {
		wrote = true
		return nil
	})

	// Nothing to insert is a success, and still forwards failures untouched.
	assert.Equal(t, status.Accepted, step.Run(context.Background(), status.OK))
	assert.False(t, wrote)
	assert.Equal(t, status.PersistenceFailed, step.Run(context.Background(), status.PersistenceFailed))
}

func TestRunChainAcceptedBetweenSteps(t *testing.T) {
	c := testCoordinator()

	// While the record is in flight each successful step emits Accepted; only
	// the completed chain reports OK.
	var midCodes []int
	observe := Step{Name: "observe", Run: func(_ context.Context, code int) int {
		midCodes = append(midCodes, code)
		return code
	}}

	code := runChain(context.Background(), status.OK, []Step{
		c.persistStep("first", func(context.Context) error { return nil }),
		observe,
		c.sectionStep("empty", true, nil),
		observe,
	})
	assert.Equal(t, status.OK, code)
	assert.Equal(t, []int{status.Accepted, status.Accepted}, midCodes)
}

func TestStoreChainVerifiesLast(t *testing.T) {
	c := testCoordinator()

	// The verification timestamp must be the final write: a chain that fails
	// on any section leaves the company pending, so it is retried rather than
	// silently dropped with a half-stored record.
	company := &db.CompanyDetail{ID: uuid.New()}
	rec := &extractor.Record{Identity: &extractor.Identity{FileNumber: "C12345"}}
	steps := c.storeChain(company, rec)

	require.NotEmpty(t, steps)
	assert.Equal(t, "company details", steps[0].Name)
	assert.Equal(t, "verification", steps[len(steps)-1].Name)
	for _, step := range steps[1 : len(steps)-1] {
		assert.NotEqual(t, "verification", step.Name)
	}
}
