package grammar

// Rule is the syntactic tag carried by a parse node. The set is open: a
// grammar may produce tags that the AST builder does not handle.
type Rule string

const (
	RuleProgram     Rule = "program"
	RuleApplication Rule = "application"
	RuleAbstraction Rule = "abstraction"
	RuleIdent       Rule = "ident"
	RuleArithmetic  Rule = "arithmetic"
	RuleZeroCheck   Rule = "zero_check"
	RuleIfThen      Rule = "if_then"
	RuleTypeNat     Rule = "type_nat"
	RuleTypeBool    Rule = "type_bool"
	RuleOpSucc      Rule = "op_succ"
	RuleOpPred      Rule = "op_pred"
	RuleValZero     Rule = "val_zero"
	RuleValTrue     Rule = "val_true"
	RuleValFalse    Rule = "val_false"
)

// KnownRules lists the tags this grammar emits, in declaration order.
var KnownRules = []Rule{
	RuleProgram,
	RuleApplication,
	RuleAbstraction,
	RuleIdent,
	RuleArithmetic,
	RuleZeroCheck,
	RuleIfThen,
	RuleTypeNat,
	RuleTypeBool,
	RuleOpSucc,
	RuleOpPred,
	RuleValZero,
	RuleValTrue,
	RuleValFalse,
}

// String returns the tag name.
func (r Rule) String() string {
	return string(r)
}
