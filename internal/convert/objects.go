package convert

import (
	"argbind/internal/ledger"
	"argbind/value"
)

func object(v value.Value, _ *Hook, _ *ledger.Ledger) (any, error) {
	return v, nil
}

func typedObject(v value.Value, h *Hook, _ *ledger.Ledger) (any, error) {
	if h == nil || h.TypeName == "" {
		return nil, Fail("(missing type for O!)")
	}

	if value.Describe(v) != h.TypeName {
		return nil, Mismatch(h.TypeName, v)
	}

	return v, nil
}

func hooked(v value.Value, h *Hook, l *ledger.Ledger) (any, error) {
	if h == nil || h.Func == nil {
		return nil, Fail("(missing converter for O&)")
	}

	return h.Func(v, h, l)
}
