package ast

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// succX is λx:Nat. succ x
func succX() Node {
	return &Abstraction{
		Ident: &Identifier{Name: "x"},
		Type:  TypeNat,
		Body: &Arithmetic{
			Op:      OperatorSucc,
			Operand: &Identifier{Name: "x"},
		},
	}
}

// everyKind contains each variant at least once.
func everyKind() Node {
	return &Application{
		Left: &Abstraction{
			Ident: &Identifier{Name: "b"},
			Type:  TypeBool,
			Body: &Condition{
				Clause: &Identifier{Name: "b"},
				Then:   &IsZero{Operand: &Arithmetic{Op: OperatorPred, Operand: &Literal{Value: ValueZero}}},
				Else:   &Literal{Value: ValueFalse},
			},
		},
		Right: &Literal{Value: ValueTrue},
	}
}

func TestNode_Kind(t *testing.T) {
	tests := []struct {
		node Node
		want NodeKind
	}{
		{&Abstraction{}, KindAbstraction},
		{&Application{}, KindApplication},
		{&Identifier{}, KindIdentifier},
		{&Condition{}, KindCondition},
		{&Arithmetic{}, KindArithmetic},
		{&IsZero{}, KindIsZero},
		{&Literal{}, KindLiteral},
	}

	for _, tt := range tests {
		if got := tt.node.Kind(); got != tt.want {
			t.Errorf("%T.Kind() = %q, want %q", tt.node, got, tt.want)
		}
	}
}

func TestChildren_StructuralOrder(t *testing.T) {
	clause := &Identifier{Name: "c"}
	then := &Identifier{Name: "t"}
	els := &Identifier{Name: "e"}

	got := Children(&Condition{Clause: clause, Then: then, Else: els})
	if len(got) != 3 || got[0] != clause || got[1] != then || got[2] != els {
		t.Errorf("Children(Condition) = %v, want clause/then/else", got)
	}

	if got := Children(&Literal{Value: ValueZero}); len(got) != 0 {
		t.Errorf("Children(Literal) = %v, want none", got)
	}
}

func TestWalk_PreOrder(t *testing.T) {
	var kinds []string
	err := Walk(succX(), func(n Node, depth int) error {
		kinds = append(kinds, strings.Repeat(">", depth)+string(n.Kind()))
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	want := []string{"Abstraction", ">Identifier", ">Arithmetic", ">>Identifier"}
	if strings.Join(kinds, ",") != strings.Join(want, ",") {
		t.Errorf("Walk order = %v, want %v", kinds, want)
	}
}

func TestWalk_StopsOnError(t *testing.T) {
	stop := errors.New("stop")
	visited := 0

	err := Walk(everyKind(), func(n Node, depth int) error {
		visited++
		if n.Kind() == KindCondition {
			return stop
		}
		return nil
	})

	if !errors.Is(err, stop) {
		t.Fatalf("Walk() error = %v, want %v", err, stop)
	}
	if visited != 4 {
		t.Errorf("visited = %d, want 4", visited)
	}
}

func TestCountAndDepth(t *testing.T) {
	if got := Count(succX()); got != 4 {
		t.Errorf("Count() = %d, want 4", got)
	}
	if got := Depth(succX()); got != 3 {
		t.Errorf("Depth() = %d, want 3", got)
	}
	if got := Count(&Literal{Value: ValueTrue}); got != 1 {
		t.Errorf("Count(leaf) = %d, want 1", got)
	}
}

func TestPrinter_Sprint(t *testing.T) {
	got := NewPrinter().Sprint(succX())
	want := "Abstraction with type Nat\n" +
		"\tIdentifier with name x\n" +
		"\tArithmetic with operator Succ\n" +
		"\t\tIdentifier with name x\n"

	if got != want {
		t.Errorf("Sprint() =\n%s\nwant\n%s", got, want)
	}
}

func TestPrinter_AllLabels(t *testing.T) {
	got := (&Printer{Indent: "  "}).Sprint(everyKind())
	want := strings.Join([]string{
		"Application",
		"  Abstraction with type Bool",
		"    Identifier with name b",
		"    Condition",
		"      Identifier with name b",
		"      IsZero",
		"        Arithmetic with operator Pred",
		"          Value Zero",
		"      Value False",
		"  Value True",
	}, "\n") + "\n"

	if got != want {
		t.Errorf("Sprint() =\n%s\nwant\n%s", got, want)
	}
}

func TestPrinter_Idempotent(t *testing.T) {
	node := everyKind()
	p := NewPrinter()

	first := p.Sprint(node)
	second := p.Sprint(node)
	if first != second {
		t.Errorf("printing twice differs:\n%s\n---\n%s", first, second)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"abstraction", succX(), "λx:Nat. succ x"},
		{
			"application spine",
			&Application{
				Left:  &Application{Left: &Identifier{Name: "f"}, Right: &Identifier{Name: "a"}},
				Right: &Identifier{Name: "b"},
			},
			"f a b",
		},
		{
			"right nested application",
			&Application{
				Left:  &Identifier{Name: "f"},
				Right: &Application{Left: &Identifier{Name: "g"}, Right: &Literal{Value: ValueZero}},
			},
			"f (g 0)",
		},
		{"every kind", everyKind(), "(λb:Bool. if b then iszero (pred 0) else false) true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.node); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarshalJSON(t *testing.T) {
	data, err := MarshalJSON(succX())
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}

	if decoded["kind"] != "Abstraction" {
		t.Errorf("kind = %v, want Abstraction", decoded["kind"])
	}
	if decoded["type"] != "Nat" {
		t.Errorf("type = %v, want Nat", decoded["type"])
	}
	body, ok := decoded["body"].(map[string]any)
	if !ok {
		t.Fatalf("body = %T, want object", decoded["body"])
	}
	if body["operator"] != "Succ" {
		t.Errorf("body.operator = %v, want Succ", body["operator"])
	}
	if _, ok := decoded["left"]; ok {
		t.Error("abstraction should not encode a left field")
	}
}
