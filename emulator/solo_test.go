package emulator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/duet/cpu"
)

func TestSolo(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"set a 1",
		"add a 2",
		"mul a a",
		"mod a 5",
		"snd a",
		"set a 0",
		"rcv a",
		"jgz a -1",
		"set a 1",
		"jgz a -2",
	}

	solo := NewSolo(assemble(t, program))

	last, err := solo.Run()
	assert.NoError(err)
	assert.Equal(int64(4), last)
	assert.Equal(1, solo.Sends)
	assert.Equal(int64(6), solo.Cpu.Ip)

	// A second run starts from fresh state.
	again, err := solo.Run()
	assert.NoError(err)
	assert.Equal(last, again)
	assert.Equal(1, solo.Sends)
}

func TestSoloNoSend(t *testing.T) {
	assert := assert.New(t)

	last, err := RunSolo(assemble(t, []string{"set a 1", "rcv a"}))
	assert.NoError(err)
	assert.Equal(int64(0), last)
}

func TestSoloLastSend(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"snd 1",
		"rcv b", // skipped, b is zero
		"snd 2",
		"snd 3",
		"set b p",
		"add b 1",
		"rcv b",
	}

	last, err := RunSolo(assemble(t, program))
	assert.NoError(err)
	assert.Equal(int64(3), last)
}

func TestSoloFault(t *testing.T) {
	assert := assert.New(t)

	last, err := RunSolo(assemble(t, []string{"snd 5", "jgz 1 9999"}))
	assert.Equal(int64(0), last)
	assert.ErrorIs(err, cpu.ErrIpInvalid)

	var fault *ErrFault
	if assert.True(errors.As(err, &fault)) {
		assert.Equal(0, fault.Id)
		assert.Equal(int64(10000), fault.Ip)
	}

	// Running off the end is a fault too.
	_, err = RunSolo(assemble(t, []string{"snd 5"}))
	assert.ErrorIs(err, cpu.ErrIpInvalid)
}

func TestSoloLimit(t *testing.T) {
	assert := assert.New(t)

	solo := NewSolo(assemble(t, []string{"add a 1", "jgz 1 -1"}))
	solo.Limit = 100

	_, err := solo.Run()
	assert.ErrorIs(err, ErrTickLimit)
	assert.Equal(100, solo.Cpu.Ticks)
	assert.Equal(int64(50), solo.Cpu.Register[0])
}

func TestSoloVerboseFault(t *testing.T) {
	assert := assert.New(t)

	buf := captureLog(t)

	solo := NewSolo(assemble(t, []string{"snd 5", "jgz 1 9999"}))
	solo.Verbose = true

	_, err := solo.Run()
	assert.ErrorIs(err, cpu.ErrIpInvalid)
	assert.Contains(buf.String(), "cpu0: 10000: fault: ")

	buf.Reset()
	solo = NewSolo(assemble(t, []string{"mod a 0"}))
	solo.Verbose = true

	_, err = solo.Run()
	assert.ErrorIs(err, cpu.ErrModZero)
	assert.Contains(buf.String(), "cpu0: 0: fault at 'mod a 0': ")
}
