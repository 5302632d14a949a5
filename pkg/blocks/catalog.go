package blocks

// CatalogEntry describes one block variant the front-end knows how to lower
// into a compile graph node. The table below is the declarative catalog
// referenced by spec §6.2; each entry is grounded on the corresponding
// variant in the reference simulator's block/redstone crates.
type CatalogEntry struct {
	// Kind is the symbolic block variant this entry documents.
	Kind Kind
	// Name is a human-readable label used in logs and DOT dumps.
	Name string
	// IsInput marks a block whose state is driven by outside interaction
	// (use/click) rather than by redstone propagation: is_input in §4.1.
	IsInput bool
	// IsOutput marks a block that is a required terminal of the graph and
	// can never be deleted by an optimization pass: is_output in §4.1,
	// the invariant in §3.6.
	IsOutput bool
	// EmitsEvents marks note blocks, whose interaction is the emission of
	// a NoteBlockPlay sound event rather than a visible power change.
	EmitsEvents bool
}

// Catalog lists every block the front-end recognizes as a compile node. Any
// block Kind not present here is simply not a node (spec §4.1: "one
// CompileNode per qualifying block").
var Catalog = []CatalogEntry{
	// ── Diodes ──────────────────────────────────────────────────────────
	{Kind: KindRedstoneRepeater, Name: "redstone_repeater"},
	{Kind: KindRedstoneComparator, Name: "redstone_comparator"},
	{Kind: KindRedstoneTorch, Name: "redstone_torch"},
	{Kind: KindRedstoneWallTorch, Name: "redstone_wall_torch"},

	// ── Wire ────────────────────────────────────────────────────────────
	// IsOutput is conditionally true (wire_dot_out option); see
	// ResolveIsOutput below, which the front-end calls per-node instead of
	// reading this table's zero value directly.
	{Kind: KindRedstoneWire, Name: "redstone_wire"},

	// ── Inputs ──────────────────────────────────────────────────────────
	{Kind: KindLever, Name: "lever", IsInput: true},
	{Kind: KindStoneButton, Name: "stone_button", IsInput: true},
	{Kind: KindStonePressurePlate, Name: "stone_pressure_plate", IsInput: true},

	// ── Outputs ─────────────────────────────────────────────────────────
	{Kind: KindRedstoneLamp, Name: "redstone_lamp", IsOutput: true},
	{Kind: KindIronTrapdoor, Name: "iron_trapdoor", IsOutput: true},
	{Kind: KindNoteBlock, Name: "note_block", IsOutput: true, EmitsEvents: true},

	// ── Constant source, never a compile-graph input itself ─────────────
	{Kind: KindRedstoneBlock, Name: "redstone_block"},

	// ── Observer: a diode-like node with asymmetric tick priority; see
	//    Design Note §9 ("reproduce verbatim; do not optimize away"). ────
	{Kind: KindObserver, Name: "observer"},
}

// byKind is built once and used by Lookup.
var byKind = func() map[Kind]CatalogEntry {
	m := make(map[Kind]CatalogEntry, len(Catalog))
	for _, e := range Catalog {
		m[e.Kind] = e
	}
	return m
}()

// Lookup returns the catalog entry for a Kind and whether it is a known
// front-end node type at all.
func Lookup(k Kind) (CatalogEntry, bool) {
	e, ok := byKind[k]
	return e, ok
}

// ResolveIsOutput computes the effective is_output flag for a block (§4.1):
// lamps, trapdoors and note blocks are always outputs; a wire is an output
// only under wireDotOut and only when it has no horizontal wire neighbors
// (the "isolated wire endpoint" rule), which the caller determines and
// passes in as hasHorizontalNeighbor.
func ResolveIsOutput(b Block, wireDotOut bool, hasHorizontalNeighbor bool) bool {
	entry, ok := Lookup(b.Kind)
	if !ok {
		return false
	}
	if entry.IsOutput {
		return true
	}
	if b.Kind == KindRedstoneWire && wireDotOut && !hasHorizontalNeighbor {
		return true
	}
	return false
}
