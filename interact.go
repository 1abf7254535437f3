package inetcore

// Rule identifies one of the eight interaction rules a redex can resolve
// to, selected by the tags of its two ports.
type Rule uint8

const (
	RuleLink Rule = iota
	RuleCall
	RuleVoid
	RuleEras
	RuleAnni
	RuleComm
	RuleOper
	RuleSwit
)

func (r Rule) String() string {
	switch r {
	case RuleLink:
		return "LINK"
	case RuleCall:
		return "CALL"
	case RuleVoid:
		return "VOID"
	case RuleEras:
		return "ERAS"
	case RuleAnni:
		return "ANNI"
	case RuleComm:
		return "COMM"
	case RuleOper:
		return "OPER"
	case RuleSwit:
		return "SWIT"
	default:
		return "????"
	}
}

// ruleTable is the symmetric 8x8 classification of which rule a pair of
// tags resolves to, indexed [a.Tag()][b.Tag()].
var ruleTable = [8][8]Rule{
	//        VAR      REF      ERA      NUM      CON      DUP      OPR      SWI
	/*VAR*/ {RuleLink, RuleLink, RuleLink, RuleLink, RuleLink, RuleLink, RuleLink, RuleLink},
	/*REF*/ {RuleLink, RuleVoid, RuleVoid, RuleVoid, RuleCall, RuleCall, RuleCall, RuleCall},
	/*ERA*/ {RuleLink, RuleVoid, RuleVoid, RuleVoid, RuleEras, RuleEras, RuleEras, RuleEras},
	/*NUM*/ {RuleLink, RuleVoid, RuleVoid, RuleVoid, RuleEras, RuleEras, RuleOper, RuleSwit},
	/*CON*/ {RuleLink, RuleCall, RuleEras, RuleEras, RuleAnni, RuleComm, RuleComm, RuleComm},
	/*DUP*/ {RuleLink, RuleCall, RuleEras, RuleEras, RuleComm, RuleAnni, RuleComm, RuleComm},
	/*OPR*/ {RuleLink, RuleCall, RuleEras, RuleOper, RuleComm, RuleComm, RuleAnni, RuleComm},
	/*SWI*/ {RuleLink, RuleCall, RuleEras, RuleSwit, RuleComm, RuleComm, RuleComm, RuleAnni},
}

func getRule(a, b Port) Rule {
	return ruleTable[a.Tag()][b.Tag()]
}

// shouldSwap reports whether a and b should swap places before dispatch,
// so that rule bodies can assume a canonical tag ordering (a.Tag() <=
// b.Tag(), barring the CALL fixup below).
func shouldSwap(a, b Port) bool {
	return b.Tag() < a.Tag()
}

// dispatch classifies a popped redex pair into a rule plus a canonically
// ordered (a, b). The REF-meets-fresh-VAR fixup is checked before the
// general swap and only in this direction — a popped pair with REF as its
// first port and VAR as its second always becomes CALL, regardless of
// what the table says for (REF, VAR). This is how top-level calls are
// seeded against an uninstantiated root variable; it is not a symmetric
// rule and must not be "fixed" to check both orderings.
func dispatch(redex Pair) (Rule, Port, Port) {
	a, b := redex.Fst(), redex.Snd()
	rule := getRule(a, b)
	if a.Tag() == TagRef && b.Tag() == TagVar {
		rule = RuleCall
	} else if shouldSwap(a, b) {
		a, b = b, a
	}
	return rule, a, b
}

// getResources reserves bag room and allocates node/var slots for an
// interaction. A hard error means the rule can never succeed no matter
// how many times it is retried — the Machine is too small for it. A false
// ok with a nil error means the resources are merely busy right now; the
// caller should push the redex back and try again later.
func (tm *tmem) getResources(rule Rule, needRBag, needNode, needVars int) (nodeLoc, varsLoc []uint32, ok bool, err error) {
	if needRBag > tm.bag.cap() {
		return nil, nil, false, &ResourceError{Kind: ResourceRedexBag, Needed: needRBag, Rule: rule, Cause: ErrArenaExhausted}
	}
	if needNode > tm.machine.nodes.len() {
		return nil, nil, false, &ResourceError{Kind: ResourceNodeArena, Needed: needNode, Rule: rule, Cause: ErrArenaExhausted}
	}
	if needVars > tm.machine.vars.len() {
		return nil, nil, false, &ResourceError{Kind: ResourceVarsArena, Needed: needVars, Rule: rule, Cause: ErrArenaExhausted}
	}
	if !tm.bag.room(needRBag) {
		return nil, nil, false, nil
	}
	nodeLoc = tm.nodeScratch(needNode)
	if got := tm.alloc.allocNodes(nodeLoc); got < needNode {
		return nil, nil, false, nil
	}
	varsLoc = tm.varsScratch(needVars)
	if got := tm.alloc.allocVars(varsLoc); got < needVars {
		return nil, nil, false, nil
	}
	return nodeLoc, varsLoc, true, nil
}

// interactLink performs A ~ B where at least one side is a variable.
func (tm *tmem) interactLink(a, b Port) (bool, error) {
	if _, _, ok, err := tm.getResources(RuleLink, 1, 0, 0); err != nil || !ok {
		return ok, err
	}
	tm.link(a, b)
	return true, nil
}

// interactCall instantiates the definition a refers to and wires its
// exposed root port to b.
func (tm *tmem) interactCall(a, b Port) (bool, error) {
	def := tm.machine.book.Lookup(a.Val())
	if def == nil {
		return false, &FatalError{Cause: ErrMalformedBook, Message: "call to undefined reference"}
	}
	needNode := len(def.NodeBuf) - 1
	nodeLoc, varsLoc, ok, err := tm.getResources(RuleCall, len(def.RBagBuf)+1, needNode, def.Vars)
	if err != nil || !ok {
		return ok, err
	}

	for i := 1; i < len(def.NodeBuf); i++ {
		tm.machine.nodes.store(nodeLoc[i-1], adjustPair(def.NodeBuf[i], nodeLoc, varsLoc))
	}

	tm.link(b, adjustPort(def.NodeBuf[0].Fst(), nodeLoc, varsLoc))
	for _, rp := range def.RBagBuf {
		tm.linkPair(adjustPair(rp, nodeLoc, varsLoc))
	}
	return true, nil
}

// interactVoid discards two ports that need no further rewriting.
func (tm *tmem) interactVoid(a, b Port) (bool, error) {
	return true, nil
}

// interactEras propagates an eraser (or a plain number, which behaves as
// one against a structural node) through both of a node's auxiliary
// ports.
func (tm *tmem) interactEras(a, b Port) (bool, error) {
	if _, _, ok, err := tm.getResources(RuleEras, 2, 0, 0); err != nil || !ok {
		return ok, err
	}
	if tm.machine.nodes.isFree(b.Val()) {
		return false, nil
	}
	node := tm.machine.nodes.take(b.Val())
	tm.linkPair(NewPair(a, node.Fst()))
	tm.linkPair(NewPair(a, node.Snd()))
	return true, nil
}

// interactAnni annihilates two nodes of the same tag, wiring their
// auxiliary ports straight across.
func (tm *tmem) interactAnni(a, b Port) (bool, error) {
	if _, _, ok, err := tm.getResources(RuleAnni, 2, 0, 0); err != nil || !ok {
		return ok, err
	}
	if tm.machine.nodes.isFree(a.Val()) || tm.machine.nodes.isFree(b.Val()) {
		return false, nil
	}
	na := tm.machine.nodes.take(a.Val())
	nb := tm.machine.nodes.take(b.Val())
	tm.linkPair(NewPair(na.Fst(), nb.Fst()))
	tm.linkPair(NewPair(na.Snd(), nb.Snd()))
	return true, nil
}

// interactComm commutes two nodes of different tags, duplicating each
// through the other along the classic commutation diamond.
func (tm *tmem) interactComm(a, b Port) (bool, error) {
	nodeLoc, varsLoc, ok, err := tm.getResources(RuleComm, 4, 4, 4)
	if err != nil || !ok {
		return ok, err
	}
	if tm.machine.nodes.isFree(a.Val()) || tm.machine.nodes.isFree(b.Val()) {
		return false, nil
	}
	na := tm.machine.nodes.take(a.Val())
	a1, a2 := na.Fst(), na.Snd()
	nb := tm.machine.nodes.take(b.Val())
	b1, b2 := nb.Fst(), nb.Snd()

	tm.machine.nodes.store(nodeLoc[0], NewPair(NewPort(TagVar, varsLoc[0]), NewPort(TagVar, varsLoc[1])))
	tm.machine.nodes.store(nodeLoc[1], NewPair(NewPort(TagVar, varsLoc[2]), NewPort(TagVar, varsLoc[3])))
	tm.machine.nodes.store(nodeLoc[2], NewPair(NewPort(TagVar, varsLoc[0]), NewPort(TagVar, varsLoc[2])))
	tm.machine.nodes.store(nodeLoc[3], NewPair(NewPort(TagVar, varsLoc[1]), NewPort(TagVar, varsLoc[3])))

	tm.linkPair(NewPair(a1, NewPort(b.Tag(), nodeLoc[0])))
	tm.linkPair(NewPair(a2, NewPort(b.Tag(), nodeLoc[1])))
	tm.linkPair(NewPair(b1, NewPort(a.Tag(), nodeLoc[2])))
	tm.linkPair(NewPair(b2, NewPort(a.Tag(), nodeLoc[3])))
	return true, nil
}

// interactOper applies a as the left operand of the operator node b,
// either producing a concrete number (if b's first auxiliary port is
// already a number) or re-wiring the operator around the unresolved
// operand.
func (tm *tmem) interactOper(a, b Port) (bool, error) {
	nodeLoc, _, ok, err := tm.getResources(RuleOper, 1, 1, 0)
	if err != nil || !ok {
		return ok, err
	}
	if tm.machine.nodes.isFree(b.Val()) {
		return false, nil
	}
	av := a.Val()
	nb := tm.machine.nodes.take(b.Val())
	b1, b2 := nb.Fst(), nb.Snd()

	if b1.Tag() == TagNum {
		result := av + b1.Val()
		tm.linkPair(NewPair(b2, NewPort(TagNum, result)))
	} else {
		tm.machine.nodes.store(nodeLoc[0], NewPair(a, b2))
		tm.linkPair(NewPair(b1, NewPort(TagOpr, nodeLoc[0])))
	}
	return true, nil
}

// interactSwit switches on the number a: zero selects the node's first
// auxiliary branch, any other value decrements and selects the second.
func (tm *tmem) interactSwit(a, b Port) (bool, error) {
	nodeLoc, _, ok, err := tm.getResources(RuleSwit, 1, 2, 0)
	if err != nil || !ok {
		return ok, err
	}
	if tm.machine.nodes.isFree(b.Val()) {
		return false, nil
	}
	av := a.Val()
	nb := tm.machine.nodes.take(b.Val())
	b1, b2 := nb.Fst(), nb.Snd()

	if av == 0 {
		tm.machine.nodes.store(nodeLoc[0], NewPair(b2, NewPort(TagEra, 0)))
		tm.linkPair(NewPair(NewPort(TagCon, nodeLoc[0]), b1))
	} else {
		tm.machine.nodes.store(nodeLoc[0], NewPair(NewPort(TagEra, 0), NewPort(TagCon, nodeLoc[1])))
		tm.machine.nodes.store(nodeLoc[1], NewPair(NewPort(TagNum, av-1), b2))
		tm.linkPair(NewPair(NewPort(TagCon, nodeLoc[0]), b1))
	}
	return true, nil
}

// interact pops one redex from tm's bag and performs the interaction it
// resolves to. It returns false (with a nil error) when the bag was empty
// or the interaction had to be deferred for lack of resources; true means
// an interaction actually happened. A non-nil error is always fatal.
func (tm *tmem) interact() (bool, error) {
	redex, has := tm.bag.pop()
	if !has {
		return false, nil
	}

	rule, a, b := dispatch(redex)

	var (
		ok  bool
		err error
	)
	switch rule {
	case RuleLink:
		ok, err = tm.interactLink(a, b)
	case RuleCall:
		ok, err = tm.interactCall(a, b)
	case RuleVoid:
		ok, err = tm.interactVoid(a, b)
	case RuleEras:
		ok, err = tm.interactEras(a, b)
	case RuleAnni:
		ok, err = tm.interactAnni(a, b)
	case RuleComm:
		ok, err = tm.interactComm(a, b)
	case RuleOper:
		ok, err = tm.interactOper(a, b)
	case RuleSwit:
		ok, err = tm.interactSwit(a, b)
	}

	if err != nil {
		return false, err
	}
	if !ok {
		tm.noteResourceRetry(rule)
		tm.bag.push(redex, isHighPriority(rule))
		return false, nil
	}
	tm.interactions++
	return true, nil
}
