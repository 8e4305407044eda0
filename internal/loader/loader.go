// Package loader seeds an index from a text file of
// "destination, weight, valuation" lines.
package loader

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gocarina/gocsv"

	logger "github.com/parcelindex/parcels/internal/logger"
	"github.com/parcelindex/parcels/parcel"
)

// ErrMalformedLine marks the record loading stopped at.
var ErrMalformedLine = errors.New("malformed line")

var validate = validator.New()

func init() {
	gocsv.SetCSVReader(newLineReader)
}

// lineReader splits each line of the seed file on commas. The destination is
// everything up to the first comma; quotes carry no meaning and are kept as
// written. Blank lines are skipped.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func newLineReader(in io.Reader) gocsv.CSVReader {
	return &lineReader{sc: bufio.NewScanner(in)}
}

func (r *lineReader) Read() ([]string, error) {
	for r.sc.Scan() {
		r.line++
		text := strings.TrimSuffix(r.sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		fields := strings.Split(text, ",")
		if len(fields) != 3 {
			return nil, &csv.ParseError{StartLine: r.line, Line: r.line, Column: 1, Err: csv.ErrFieldCount}
		}
		for i := range fields {
			fields[i] = strings.TrimLeft(fields[i], " \t")
		}
		return fields, nil
	}
	if err := r.sc.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

func (r *lineReader) ReadAll() ([][]string, error) {
	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}

// grams is a weight field. Only a plain base-10 integer is accepted, so
// "0x10" and "12.7" fail rather than being reinterpreted.
type grams int

func (g *grams) UnmarshalCSV(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("missing weight")
	}
	n, err := strconv.ParseInt(s, 10, 0)
	if err != nil {
		return fmt.Errorf("weight %q is not a whole number", s)
	}
	*g = grams(n)
	return nil
}

// amount is a valuation field written as a decimal number.
type amount float64

func (a *amount) UnmarshalCSV(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("missing valuation")
	}
	if strings.Trim(s, "0123456789+-.eE") != "" {
		return fmt.Errorf("valuation %q is not a decimal number", s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("valuation %q is not a decimal number", s)
	}
	*a = amount(f)
	return nil
}

// Inserter receives every parcel read, in file order.
type Inserter interface {
	InsertParcel(parcel.Parcel) error
}

// row is one line of the seed file. The destination runs up to the first
// comma and keeps inner spaces.
type row struct {
	Destination string `csv:"destination" validate:"required"`
	Weight      grams  `csv:"weight" validate:"gte=0"`
	Valuation   amount `csv:"valuation" validate:"gte=0"`
}

func (r row) parcel() parcel.Parcel {
	return parcel.Parcel{
		Destination: r.Destination,
		Weight:      int(r.Weight),
		Valuation:   float64(r.Valuation),
	}
}

// Result reports how far loading got. Stopped is nil when the whole input
// was read, and otherwise wraps ErrMalformedLine with the reason.
type Result struct {
	Loaded  int
	Stopped error
}

// Load inserts every record of r into sink until the first record that does
// not decode or validate. That record and everything after it are skipped
// without failing the load; only an error from sink is returned.
func Load(r io.Reader, sink Inserter) (Result, error) {
	var (
		res     Result
		sinkErr error
	)
	rows := make(chan row)
	done := make(chan error, 1)
	go func() {
		done <- gocsv.UnmarshalToChanWithoutHeaders(r, rows)
	}()

	for rw := range rows {
		if res.Stopped != nil || sinkErr != nil {
			// Drain so the decoder can finish.
			continue
		}
		if err := validate.Struct(rw); err != nil {
			res.Stopped = fmt.Errorf("%w: record %d: %v", ErrMalformedLine, res.Loaded+1, err)
			continue
		}
		if err := sink.InsertParcel(rw.parcel()); err != nil {
			if errors.Is(err, parcel.ErrInvalidParcel) {
				res.Stopped = fmt.Errorf("%w: record %d: %v", ErrMalformedLine, res.Loaded+1, err)
				continue
			}
			sinkErr = err
			continue
		}
		res.Loaded++
	}

	if err := <-done; err != nil && res.Stopped == nil && sinkErr == nil {
		res.Stopped = fmt.Errorf("%w: record %d: %v", ErrMalformedLine, res.Loaded+1, err)
	}
	return res, sinkErr
}

// LoadFile opens path and loads it into sink. A file that cannot be opened
// is an error; a malformed line is not.
func LoadFile(path string, sink Inserter) (Result, error) {
	log := logger.WithFile(path)

	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	res, err := Load(f, sink)
	if err != nil {
		return res, fmt.Errorf("load %s: %w", path, err)
	}
	if res.Stopped != nil {
		log.Warnf("loading stopped after %d parcels: %v", res.Loaded, res.Stopped)
	}
	log.Debugf("loaded %d parcels", res.Loaded)
	return res, nil
}
