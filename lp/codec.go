// SPDX-License-Identifier: MIT

package lp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"

	"github.com/dacin21/exact-lp/fraction"
	"github.com/dacin21/exact-lp/vec"
)

// Text format of an instance (whitespace-separated tokens, integers of any size):
//
//	n d
//	a_00 … a_0d        (n rows of d+1 entries, homogeneous constant last)
//	…
//	c_0 … c_{d-1}
//
// A fixture wraps an instance with its expected outcome:
//
//	DACIN_LP <instance> SOL num den [x_0 … x_d]
//
// num/den is the objective; 1 0 means unbounded, -1 0 infeasible, and only a
// finite objective is followed by the d+1 homogeneous solution coordinates.
const (
	fixtureMagic = "DACIN_LP"
	fixtureSol   = "SOL"
)

// tokenReader yields whitespace-separated tokens and remembers their position.
type tokenReader struct {
	sc  *bufio.Scanner
	pos int
}

func newTokenReader(r io.Reader) *tokenReader {
	var sc = bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<26)
	sc.Split(bufio.ScanWords)

	return &tokenReader{sc: sc}
}

func (t *tokenReader) next() (string, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("token %d: unexpected end of input: %w", t.pos, ErrMalformedInput)
	}
	t.pos++

	return t.sc.Text(), nil
}

func (t *tokenReader) bigInt() (*big.Int, error) {
	s, err := t.next()
	if err != nil {
		return nil, err
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("token %d: %q is not an integer: %w", t.pos, s, ErrMalformedInput)
	}

	return v, nil
}

func (t *tokenReader) count() (int, error) {
	s, err := t.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("token %d: %q is not a count: %w", t.pos, s, ErrMalformedInput)
	}

	return v, nil
}

func (t *tokenReader) expect(word string) error {
	s, err := t.next()
	if err != nil {
		return err
	}
	if s != word {
		return fmt.Errorf("token %d: got %q, want %q: %w", t.pos, s, word, ErrMalformedInput)
	}

	return nil
}

func (t *tokenReader) vector(n int) ([]*big.Int, error) {
	var out = make([]*big.Int, n)
	for i := range out {
		v, err := t.bigInt()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

func (t *tokenReader) instance() (Instance, error) {
	n, err := t.count()
	if err != nil {
		return Instance{}, err
	}
	d, err := t.count()
	if err != nil {
		return Instance{}, err
	}
	var a = make([][]*big.Int, n)
	for i := range a {
		if a[i], err = t.vector(d + 1); err != nil {
			return Instance{}, err
		}
	}
	c, err := t.vector(d)
	if err != nil {
		return Instance{}, err
	}

	return NewInstance(a, c)
}

// ReadInstance parses one instance from r.
//
// Errors: ErrMalformedInput (wrapped with the token position) or the reader's error.
func ReadInstance(r io.Reader) (Instance, error) {
	return newTokenReader(r).instance()
}

// WriteInstance writes in in the text format; entries keep full precision.
func WriteInstance(w io.Writer, in Instance) error {
	var bw = bufio.NewWriter(w)
	writeInstance(bw, in)

	return bw.Flush()
}

func writeInstance(bw *bufio.Writer, in Instance) {
	fmt.Fprintf(bw, "%d %d\n", in.N(), in.D())
	for _, row := range in.Rows() {
		writeVector(bw, row)
	}
	writeVector(bw, in.Objective())
}

func writeVector(bw *bufio.Writer, v []*big.Int) {
	for i, e := range v {
		if i > 0 {
			bw.WriteByte(' ')
		}
		bw.WriteString(e.String())
	}
	bw.WriteByte('\n')
}

// Fixture is an instance paired with its known outcome.
type Fixture struct {
	Instance  Instance
	Objective fraction.Fraction
	// X is the expected homogeneous optimum; nil unless Status() is Optimal.
	X []*big.Int
}

// Status derives the expected status from the objective sentinel.
func (f Fixture) Status() Status {
	switch {
	case f.Objective.Equal(fraction.Inf()):
		return Unbounded
	case f.Objective.Equal(fraction.Inf().Neg()):
		return Infeasible
	default:
		return Optimal
	}
}

// FixtureFromResult records res as the expected outcome of in.
func FixtureFromResult(in Instance, res Result) Fixture {
	var f = Fixture{Instance: in, Objective: res.Objective()}
	if res.Status() == Optimal {
		f.X = vec.Clone(res.X())
	}

	return f
}

// ReadFixture parses one fixture from r.
func ReadFixture(r io.Reader) (Fixture, error) {
	var t = newTokenReader(r)
	if err := t.expect(fixtureMagic); err != nil {
		return Fixture{}, err
	}
	in, err := t.instance()
	if err != nil {
		return Fixture{}, err
	}
	if err = t.expect(fixtureSol); err != nil {
		return Fixture{}, err
	}
	num, err := t.bigInt()
	if err != nil {
		return Fixture{}, err
	}
	den, err := t.bigInt()
	if err != nil {
		return Fixture{}, err
	}
	if num.Sign() == 0 && den.Sign() == 0 {
		return Fixture{}, fmt.Errorf("token %d: objective 0/0: %w", t.pos, ErrMalformedInput)
	}
	var f = Fixture{Instance: in, Objective: fraction.New(num, den)}
	if f.Status() == Optimal {
		if f.X, err = t.vector(in.D() + 1); err != nil {
			return Fixture{}, err
		}
	}

	return f, nil
}

// WriteFixture writes f in the fixture format.
func WriteFixture(w io.Writer, f Fixture) error {
	var bw = bufio.NewWriter(w)
	bw.WriteString(fixtureMagic)
	bw.WriteByte('\n')
	writeInstance(bw, f.Instance)
	fmt.Fprintf(bw, "%s\n%s %s\n", fixtureSol, f.Objective.Num(), f.Objective.Den())
	if f.Status() == Optimal {
		writeVector(bw, f.X)
	}

	return bw.Flush()
}

// Verify compares a solver result with the expected outcome.
//
// Errors, in order of checking: ErrStatusMismatch, ErrObjectiveMismatch,
// ErrSolutionDiffers. The last one is soft: on a degenerate LP another optimal
// vertex is still a correct answer. Use IsHardMismatch to tell them apart.
func (f Fixture) Verify(res Result) error {
	var want, got = f.Status(), res.Status()
	if want != got {
		return fmt.Errorf("want %s, got %s: %w", want, got, ErrStatusMismatch)
	}
	if want != Optimal {
		return nil
	}
	if !f.Objective.Equal(res.Objective()) {
		return fmt.Errorf("want %s, got %s: %w", f.Objective, res.Objective(), ErrObjectiveMismatch)
	}
	if !vec.Equal(vec.Reduced(f.X), vec.Reduced(res.X())) {
		return ErrSolutionDiffers
	}

	return nil
}

// IsHardMismatch reports whether err from Verify means a wrong answer (as
// opposed to nil or a differing but equally optimal point).
func IsHardMismatch(err error) bool {
	return err != nil && !errors.Is(err, ErrSolutionDiffers)
}
