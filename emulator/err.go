package emulator

import (
	"errors"
	"log"
	"strings"

	"github.com/ezrec/duet/cpu"
	"github.com/ezrec/duet/translate"
)

var f = translate.From

var (
	ErrTickLimit = errors.New(f("tick limit reached"))
)

// ErrFault indicates which processor stopped abnormally, and where.
type ErrFault struct {
	Id     int
	Ip     int64
	LineNo int
	Err    error
}

func (err *ErrFault) Error() string {
	if err.LineNo == 0 {
		return f("processor %d ip %d %v", err.Id, err.Ip, err.Err)
	}
	return f("processor %d ip %d line %d %v", err.Id, err.Ip, err.LineNo, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

// newFault describes where a processor stopped.
func newFault(verbose bool, prog *cpu.Program, cp *cpu.Cpu, cause error) *ErrFault {
	if verbose {
		if op, ok := prog.Opcode(cp.Ip); ok {
			log.Printf("cpu%d: %d: fault at '%v': %v", cp.Id, cp.Ip, strings.Join(op.Words, " "), cause)
		} else {
			log.Printf("cpu%d: %d: fault: %v", cp.Id, cp.Ip, cause)
		}
	}

	return &ErrFault{
		Id:     cp.Id,
		Ip:     cp.Ip,
		LineNo: prog.LineNo(cp.Ip),
		Err:    cause,
	}
}
