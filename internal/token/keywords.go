package token

// KeywordVersion selects which set of reserved words the lexer recognizes,
// controlled at runtime by the `` `begin_keywords ``/`` `end_keywords ``
// directive pair (§4.D, §4.E). Compilation always starts at KeywordsDefault.
// The zero KeywordVersion names no version; lexer.New and preprocess.New
// treat it as KeywordsDefault.
type KeywordVersion uint8

const (
	// KeywordsVerilog1995 recognizes only the Verilog-95 keyword set:
	// SystemVerilog-only keywords (logic, always_comb, class, ...) lex as
	// plain identifiers instead.
	KeywordsVerilog1995 KeywordVersion = iota + 1
	KeywordsVerilog2001
	KeywordsVerilog2001NoConfig
	KeywordsSystemVerilog2005
	KeywordsSystemVerilog2009
	KeywordsSystemVerilog2012
	KeywordsSystemVerilog2017

	// KeywordsDefault is the version in effect with no active
	// `` `begin_keywords `` directive.
	KeywordsDefault = KeywordsSystemVerilog2017
)

// sv2005Only lists keywords introduced by SystemVerilog (IEEE 1800) that do
// not exist in plain Verilog (IEEE 1364), used to gate recognition when an
// older `` `begin_keywords `` version is active. This is a representative
// rather than exhaustive subset of the kinds this front end lexes at all
// (§4.D's scope already limits which constructs are recognized).
var sv2005Only = map[Kind]bool{
	KwLogic: true, KwBit: true, KwByte: true, KwShortint: true, KwLongint: true,
	KwShortreal: true, KwAlwaysComb: true, KwAlwaysFF: true, KwAlwaysLatch: true,
	KwPackage: true, KwEndpackage: true, KwInterface: true, KwEndinterface: true,
	KwProgram: true, KwEndprogram: true, KwClass: true, KwEndclass: true,
	KwExtends: true, KwImplements: true, KwTypedef: true, KwStruct: true,
	KwUnion: true, KwPacked: true, KwUnique: true, KwUnique0: true,
	KwPriority: true, KwTagged: true, KwMatches: true, KwInside: true,
	KwDist: true, KwSolve: true, KwBefore: true, KwSoft: true, KwRand: true,
	KwRandc: true, KwRandcase: true, KwRandsequence: true, KwConstraint: true,
	KwCovergroup: true, KwEndgroup: true, KwCoverpoint: true, KwCross: true,
	KwBins: true, KwIgnoreBins: true, KwIllegalBins: true, KwProperty: true,
	KwEndproperty: true, KwSequence: true, KwEndsequence: true, KwAssert: true,
	KwAssume: true, KwCover: true, KwVirtual: true, KwPure: true, KwLocal: true,
	KwProtected: true, KwNew: true, KwSuper: true, KwThis: true, KwNull: true,
	KwChandle: true, KwString: true, KwVoid: true, KwRef: true, KwWith: true,
	KwForeach: true, KwFinal: true, KwDo: true, KwJoinAny: true, KwJoinNone: true,
	KwExport: true, KwStatic: true, KwAutomatic: true, KwUwire: true,
}

var keywords = map[string]Kind{
	"module": KwModule, "endmodule": KwEndmodule,
	"interface": KwInterface, "endinterface": KwEndinterface,
	"program": KwProgram, "endprogram": KwEndprogram,
	"package": KwPackage, "endpackage": KwEndpackage,
	"class": KwClass, "endclass": KwEndclass,
	"extends": KwExtends, "implements": KwImplements,
	"generate": KwGenerate, "endgenerate": KwEndgenerate, "genvar": KwGenvar,
	"for": KwFor, "foreach": KwForeach, "if": KwIf, "else": KwElse,
	"case": KwCase, "casex": KwCasex, "casez": KwCasez, "endcase": KwEndcase,
	"default": KwDefault, "begin": KwBegin, "end": KwEnd,
	"function": KwFunction, "endfunction": KwEndfunction,
	"task": KwTask, "endtask": KwEndtask, "return": KwReturn,
	"while": KwWhile, "do": KwDo, "repeat": KwRepeat, "forever": KwForever,
	"break": KwBreak, "continue": KwContinue,

	"input": KwInput, "output": KwOutput, "inout": KwInout, "ref": KwRef,
	"wire": KwWire, "wand": KwWand, "wor": KwWor,
	"tri": KwTri, "tri0": KwTri0, "tri1": KwTri1,
	"supply0": KwSupply0, "supply1": KwSupply1, "uwire": KwUwire,

	"logic": KwLogic, "reg": KwReg, "bit": KwBit, "byte": KwByte,
	"shortint": KwShortint, "int": KwInt, "longint": KwLongint,
	"integer": KwInteger, "time": KwTime, "shortreal": KwShortreal,
	"real": KwReal, "realtime": KwRealtime, "string": KwString,
	"event": KwEvent, "void": KwVoid, "chandle": KwChandle,
	"signed": KwSigned, "unsigned": KwUnsigned, "typedef": KwTypedef,
	"struct": KwStruct, "union": KwUnion, "enum": KwEnum, "packed": KwPacked,
	"localparam": KwLocalparam, "parameter": KwParameter, "const": KwConst,

	"always": KwAlways, "always_comb": KwAlwaysComb, "always_ff": KwAlwaysFF,
	"always_latch": KwAlwaysLatch, "initial": KwInitial, "final": KwFinal,
	"assign": KwAssign, "deassign": KwDeassign, "force": KwForce, "release": KwRelease,
	"posedge": KwPosedge, "negedge": KwNegedge, "edge": KwEdge, "wait": KwWait,
	"fork": KwFork, "join": KwJoin, "join_any": KwJoinAny, "join_none": KwJoinNone,
	"disable": KwDisable, "assert": KwAssert, "assume": KwAssume, "cover": KwCover,
	"property": KwProperty, "endproperty": KwEndproperty,
	"sequence": KwSequence, "endsequence": KwEndsequence,
	"import": KwImport, "export": KwExport, "virtual": KwVirtual, "pure": KwPure,
	"extern": KwExtern, "static": KwStatic, "automatic": KwAutomatic,
	"local": KwLocal, "protected": KwProtected, "new": KwNew, "super": KwSuper,
	"this": KwThis, "null": KwNull, "instance": KwInstance,

	"inside": KwInside, "dist": KwDist, "with": KwWith,
	"unique": KwUnique, "unique0": KwUnique0, "priority": KwPriority,
	"tagged": KwTagged, "matches": KwMatches, "solve": KwSolve, "before": KwBefore,
	"soft": KwSoft, "rand": KwRand, "randc": KwRandc,
	"randcase": KwRandcase, "randsequence": KwRandsequence, "constraint": KwConstraint,
	"covergroup": KwCovergroup, "endgroup": KwEndgroup, "coverpoint": KwCoverpoint,
	"cross": KwCross, "bins": KwBins, "ignore_bins": KwIgnoreBins,
	"illegal_bins": KwIllegalBins,
}

// LookupKeyword returns the reserved-word Kind for ident under ver, or
// (Ident, false) if ident is not a keyword in that version. Recognition is
// case-sensitive; SystemVerilog keywords are always lowercase.
func LookupKeyword(ident string, ver KeywordVersion) (Kind, bool) {
	k, ok := keywords[ident]
	if !ok {
		return Ident, false
	}
	if ver < KeywordsSystemVerilog2005 && sv2005Only[k] {
		return Ident, false
	}
	return k, true
}
