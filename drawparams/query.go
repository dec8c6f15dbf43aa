package drawparams

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/bloeys/ngl/assert"
	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
)

var ErrQueryNotStarted = errors.New("drawparams: query was never used by a draw")

type QueryType uint8

const (
	QueryType_SamplesPassed QueryType = iota
	QueryType_AnySamplesPassed
	QueryType_TimeElapsed
	QueryType_PrimitivesGenerated
	QueryType_PrimitivesWritten
)

func (q QueryType) ToGL() gl.Enum {

	switch q {
	case QueryType_SamplesPassed:
		return gl.SAMPLES_PASSED
	case QueryType_AnySamplesPassed:
		return gl.ANY_SAMPLES_PASSED
	case QueryType_TimeElapsed:
		return gl.TIME_ELAPSED
	case QueryType_PrimitivesGenerated:
		return gl.PRIMITIVES_GENERATED
	case QueryType_PrimitivesWritten:
		return gl.TRANSFORM_FEEDBACK_PRIMITIVES_WRITTEN
	}

	assert.T(false, "Unexpected QueryType value '%d'", q)
	return 0
}

func (q QueryType) String() string {

	switch q {
	case QueryType_SamplesPassed:
		return "samples passed"
	case QueryType_AnySamplesPassed:
		return "any samples passed"
	case QueryType_TimeElapsed:
		return "time elapsed"
	case QueryType_PrimitivesGenerated:
		return "primitives generated"
	case QueryType_PrimitivesWritten:
		return "transform feedback primitives written"
	default:
		return fmt.Sprintf("QueryType(%d)", uint8(q))
	}
}

func (q QueryType) supported(caps *glcontext.Capabilities) bool {

	switch q {
	case QueryType_SamplesPassed:
		return caps.Version.Api == gl.ApiGL
	case QueryType_AnySamplesPassed:
		return caps.SupportsAnySamplesPassed()
	case QueryType_TimeElapsed:
		return caps.SupportsTimerQuery()
	}

	return caps.SupportsTransformFeedback()
}

// Query counts something about the draws it is attached to through
// DrawParameters. Draws using the same query keep adding to it until its
// result is read.
type Query struct {
	ctx     *glcontext.Context
	id      uint32
	typ     QueryType
	started bool
}

func NewQuery(cc *glcontext.CommandContext, typ QueryType) (*Query, error) {

	if !typ.supported(cc.Caps) {
		return nil, fmt.Errorf("%w: %s on %s", ErrQueryNotSupported, typ, cc.Caps.Version)
	}

	q := &Query{ctx: cc.Context(), typ: typ}
	q.id = cc.GL.GenQuery()
	if q.id == 0 {
		return nil, fmt.Errorf("%w: query", glcontext.ErrObjectCreation)
	}

	runtime.SetFinalizer(q, (*Query).finalize)
	return q, nil
}

func (q *Query) finalize() {
	q.ctx.Release(glcontext.ObjectKind_Query, q.id)
}

func (q *Query) Id() uint32 {
	return q.id
}

func (q *Query) Type() QueryType {
	return q.typ
}

func (q *Query) check(cc *glcontext.CommandContext) error {

	if q.id == 0 {
		return glcontext.ErrDeleted
	}

	return cc.CheckOwner(q.ctx)
}

func (q *Query) begin(cc *glcontext.CommandContext) error {

	if err := q.check(cc); err != nil {
		return err
	}

	if err := cc.BeginQuery(q.typ.ToGL(), q.id); err != nil {
		return fmt.Errorf("%w: %s", err, q.typ)
	}

	q.started = true
	return nil
}

func (q *Query) end(cc *glcontext.CommandContext) {
	if cc.State.ActiveQueries[q.typ.ToGL()] == q.id {
		cc.EndQuery(q.typ.ToGL())
	}
}

// IsReady reports whether Result would return without waiting for the GPU
func (q *Query) IsReady(cc *glcontext.CommandContext) (bool, error) {

	if err := q.check(cc); err != nil {
		return false, err
	}

	if !q.started {
		return false, ErrQueryNotStarted
	}

	q.end(cc)
	return cc.GL.GetQueryObjectui64(q.id, gl.QUERY_RESULT_AVAILABLE) != 0, nil
}

// Result waits for and returns the query value. Time is in nanoseconds and
// any-samples-passed queries return 0 or 1.
func (q *Query) Result(cc *glcontext.CommandContext) (uint64, error) {

	if err := q.check(cc); err != nil {
		return 0, err
	}

	if !q.started {
		return 0, ErrQueryNotStarted
	}

	q.end(cc)
	return cc.GL.GetQueryObjectui64(q.id, gl.QUERY_RESULT), nil
}

func (q *Query) Delete(cc *glcontext.CommandContext) error {

	if q.id == 0 {
		return nil
	}

	if err := cc.CheckOwner(q.ctx); err != nil {
		return err
	}

	cc.DeleteQuery(q.id)
	q.id = 0
	runtime.SetFinalizer(q, nil)
	return nil
}
