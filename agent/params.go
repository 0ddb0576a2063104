package agent

import (
	"fmt"
	"strconv"
)

type ParamType uint8

const (
	U32 ParamType = iota + 1
	I32
	F32
)

func (t ParamType) String() string {
	switch t {
	case U32:
		return "u32"
	case I32:
		return "i32"
	case F32:
		return "f32"
	default:
		return "???"
	}
}

// Param describes a named runtime parameter together with its current
// value, held as uint32, int32 or float32 according to Type.
type Param struct {
	Name  string
	Type  ParamType
	Value any
}

type paramSlot struct {
	name string
	kind ParamType
	get  func() any
	set  func(value any) error
}

// paramTable implements the parameter half of the AI interface.
type paramTable struct {
	slots []paramSlot
}

func (p *paramTable) find(name string) (*paramSlot, error) {
	for i := range p.slots {
		if p.slots[i].name == name {
			return &p.slots[i], nil
		}
	}
	return nil, fmt.Errorf("%w: unknown parameter %q", ErrInvalidArgument, name)
}

func (p *paramTable) list() []Param {
	result := make([]Param, 0, len(p.slots))
	for _, slot := range p.slots {
		result = append(result, Param{Name: slot.name, Type: slot.kind, Value: slot.get()})
	}
	return result
}

func (p *paramTable) get(name string) (any, error) {
	slot, err := p.find(name)
	if err != nil {
		return nil, err
	}
	return slot.get(), nil
}

func (p *paramTable) set(name string, value any) error {
	slot, err := p.find(name)
	if err != nil {
		return err
	}

	ok := false
	switch value.(type) {
	case uint32:
		ok = slot.kind == U32
	case int32:
		ok = slot.kind == I32
	case float32:
		ok = slot.kind == F32
	}
	if !ok {
		return fmt.Errorf("%w: parameter %q expects %s, got %T", ErrInvalidArgument, name, slot.kind, value)
	}
	return slot.set(value)
}

func (p *paramTable) setString(name, text string) error {
	slot, err := p.find(name)
	if err != nil {
		return err
	}

	var value any
	switch slot.kind {
	case U32:
		var v uint64
		v, err = strconv.ParseUint(text, 10, 32)
		value = uint32(v)
	case I32:
		var v int64
		v, err = strconv.ParseInt(text, 10, 32)
		value = int32(v)
	case F32:
		var v float64
		v, err = strconv.ParseFloat(text, 32)
		value = float32(v)
	}
	if err != nil {
		return fmt.Errorf("%w: parameter %q: %v", ErrInvalidArgument, name, err)
	}
	return slot.set(value)
}
