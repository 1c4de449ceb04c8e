package types

import (
	"fmt"
	"slices"
	"sort"

	"fortio.org/safecast"
)

// memberList is the side-table entry shared by union and intersection types:
// an ordered, de-duplicated list of member TypeIDs (spec §3.1, §3.2).
type memberList struct {
	Members []TypeID
}

func (in *Interner) appendMemberList(members []TypeID) uint32 {
	for i := 1; i < len(in.memberLists); i++ {
		if slices.Equal(in.memberLists[i].Members, members) {
			slot, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(fmt.Errorf("types: member list overflow: %w", err))
			}
			return slot
		}
	}
	in.memberLists = append(in.memberLists, memberList{Members: cloneTypeArgs(members)})
	slot, err := safecast.Conv[uint32](len(in.memberLists) - 1)
	if err != nil {
		panic(fmt.Errorf("types: member list overflow: %w", err))
	}
	return slot
}

func (in *Interner) memberListFor(id TypeID, kind Kind) ([]TypeID, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != kind || int(tt.Payload) >= len(in.memberLists) {
		return nil, false
	}
	return in.memberLists[tt.Payload].Members, true
}

// UnionMembers returns the canonicalised member list of a union TypeID.
func (in *Interner) UnionMembers(id TypeID) ([]TypeID, bool) {
	return in.memberListFor(id, KindUnion)
}

// IntersectionMembers returns the canonicalised member list of an
// intersection TypeID.
func (in *Interner) IntersectionMembers(id TypeID) ([]TypeID, bool) {
	return in.memberListFor(id, KindIntersection)
}

// Union canonicalises and interns a union type (spec §4.1):
//   - flatten nested unions
//   - remove `never`
//   - collapse duplicate TypeIDs
//   - absorb with `any`/`unknown` (T | any = any, T | unknown = unknown)
//   - empty -> never, single element -> that element
//   - sort the remainder by TypeID for a deterministic, order-independent key
func (in *Interner) Union(members []TypeID) TypeID {
	flat := make([]TypeID, 0, len(members))
	in.flattenInto(&flat, members, KindUnion)

	for _, m := range flat {
		if m == in.builtins.Any {
			return in.builtins.Any
		}
		if m == in.builtins.Unknown {
			return in.builtins.Unknown
		}
	}

	seen := make(map[TypeID]struct{}, len(flat))
	out := flat[:0]
	for _, m := range flat {
		if m == in.builtins.Never || m == NoTypeID {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}

	switch len(out) {
	case 0:
		return in.builtins.Never
	case 1:
		return out[0]
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	slot := in.appendMemberList(out)
	return in.Intern(Type{Kind: KindUnion, Payload: slot})
}

// Intersection canonicalises and interns an intersection type (spec §4.1):
//   - flatten nested intersections
//   - T & never = never, T & any = any, T & unknown = T
//   - empty -> unknown, single element -> that element
//   - sort the remainder by TypeID
//
// Object intersections are not structurally merged here; the subtype
// checker decides assignability against an un-merged intersection.
func (in *Interner) Intersection(members []TypeID) TypeID {
	flat := make([]TypeID, 0, len(members))
	in.flattenInto(&flat, members, KindIntersection)

	for _, m := range flat {
		if m == in.builtins.Never {
			return in.builtins.Never
		}
		if m == in.builtins.Any {
			return in.builtins.Any
		}
	}

	seen := make(map[TypeID]struct{}, len(flat))
	out := flat[:0]
	for _, m := range flat {
		if m == in.builtins.Unknown || m == NoTypeID {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}

	switch len(out) {
	case 0:
		return in.builtins.Unknown
	case 1:
		return out[0]
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	slot := in.appendMemberList(out)
	return in.Intern(Type{Kind: KindIntersection, Payload: slot})
}

func (in *Interner) flattenInto(out *[]TypeID, members []TypeID, kind Kind) {
	for _, m := range members {
		if tt, ok := in.Lookup(m); ok && tt.Kind == kind {
			if nested, ok := in.memberListFor(m, kind); ok {
				in.flattenInto(out, nested, kind)
				continue
			}
		}
		*out = append(*out, m)
	}
}
