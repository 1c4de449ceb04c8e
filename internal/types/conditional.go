package types

import (
	"fmt"

	"fortio.org/safecast"
)

// ConditionalRecord is `CheckType extends ExtendsType ? TrueType : FalseType`
// (spec §3.1, §4.3.1).
type ConditionalRecord struct {
	CheckType      TypeID
	ExtendsType    TypeID
	TrueType       TypeID
	FalseType      TypeID
	IsDistributive bool
}

// Conditional interns a conditional-type record. Conditionals are NOT
// deduplicated against structurally-equal records created at different call
// sites beyond this table lookup, matching the rest of the interner's
// hash-cons behaviour.
func (in *Interner) Conditional(rec ConditionalRecord) TypeID {
	for i := 1; i < len(in.conditionals); i++ {
		if in.conditionals[i] == rec {
			slot, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(fmt.Errorf("types: conditional overflow: %w", err))
			}
			return in.Intern(Type{Kind: KindConditional, Payload: slot})
		}
	}
	in.conditionals = append(in.conditionals, rec)
	slot, err := safecast.Conv[uint32](len(in.conditionals) - 1)
	if err != nil {
		panic(fmt.Errorf("types: conditional overflow: %w", err))
	}
	return in.internRaw(Type{Kind: KindConditional, Payload: slot})
}

// ConditionalInfo reads back a conditional-type record.
func (in *Interner) ConditionalInfo(id TypeID) (*ConditionalRecord, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindConditional || int(tt.Payload) >= len(in.conditionals) {
		return nil, false
	}
	return &in.conditionals[tt.Payload], true
}
