package rir

// ByID indexes a program's declarations by their arena DeclID, mirroring
// the teacher's enclosing-class-by-stable-id idiom (internal/sid) but at
// the coarser grain of a plain arena index rather than a content hash,
// since decl identity here only needs to be stable within one compilation.
func (p *Program) ByID() map[DeclID]*TopLevelDecl {
	out := make(map[DeclID]*TopLevelDecl)
	for _, m := range p.Modules {
		for _, d := range m.Decls {
			out[d.ID] = d
		}
	}
	return out
}

// Members returns a decl's members regardless of its variant. Datatypes,
// newtypes, and subset types never carry members.
func (d *TopLevelDecl) Members() []*Member {
	switch d.Kind {
	case DeclClass, DeclTrait:
		if d.Class != nil {
			return d.Class.Members
		}
	case DeclIterator:
		if d.Iterator != nil {
			return d.Iterator.Members
		}
	}
	return nil
}

// IsGhost reports whether the declaration itself is ghost-only (§4.1:
// "drop non-ghost members whose enclosing type is itself ghost").
func (d *TopLevelDecl) IsGhost() bool {
	return d.Kind == DeclClass && d.Class != nil && d.Class.IsGhost
}
