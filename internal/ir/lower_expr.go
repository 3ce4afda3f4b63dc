// Copyright 2026 The daml-sast Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ir

import (
	lferrors "github.com/daml-sast/daml-sast/internal/lf/errors"
	"github.com/daml-sast/daml-sast/internal/lf/decode"
)

// lowerExpr is the single dispatch point every kind goes through,
// regardless of dialect. Dialect-only differences — which kinds are
// legal, and which wire fields a given kind's package/interface
// references pull from — are resolved through d.
func lowerExpr(n decode.ExprNode, env typeEnv, module, definition string, d dialect) (*Expr, error) {
	if !n.Valid() {
		return nil, lferrors.New(lferrors.Decode, "empty expression node")
	}
	kind := n.Kind()
	loc := lowerLocation(n.Location, module, definition)

	switch kind {
	case "party":
		name := d.InternedStr(strIdx(n))
		return &Expr{Kind: kind, Value: name, Typ: &Type{Tag: "con", Name: "Party"}, Location: loc}, nil

	case "text", "rounding_mode", "builtin", "prim_con":
		return &Expr{Kind: kind, Value: d.InternedStr(strIdx(n)), Location: loc}, nil

	case "decimal", "numeric", "date", "timestamp":
		text, _ := n.TextVal()
		return &Expr{Kind: kind, Value: text, Location: loc}, nil

	case "int64":
		v, _ := n.IntVal()
		return &Expr{Kind: kind, Value: v, Location: loc}, nil

	case "var":
		name := d.InternedStr(strIdx(n))
		return &Expr{Kind: kind, Value: name, Typ: env[name], Location: loc}, nil

	case "val_ref":
		modIdx, _ := n.DNameIdx()
		nameIdx, _ := n.StrIdx2()
		pkgID := ""
		if ref, ok := n.PackageRef(); ok {
			pkgID = d.PackageRef(ref)
		}
		ref := ValRef{Package: pkgID, Module: d.InternedDName(modIdx), Name: d.InternedStr(nameIdx)}
		return &Expr{Kind: kind, Value: ref, Location: loc}, nil

	case "record":
		return lowerRecordLike(n, env, module, definition, d, kind, true)
	case "struct":
		return lowerRecordLike(n, env, module, definition, d, kind, false)

	case "record_proj", "struct_proj":
		field := d.InternedStr(strIdx(n))
		children, err := lowerChildren(n.Children(), env, module, definition, d)
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: kind, Value: field, Children: children, Location: loc}, nil

	case "record_upd", "struct_upd":
		field := d.InternedStr(strIdx(n))
		children, err := lowerChildren(n.Children(), env, module, definition, d)
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: kind, Value: field, Children: children, Location: loc}, nil

	case "variant":
		tycon := d.InternedDName(dnameIdx(n))
		ctor := d.InternedStr(strIdx2(n))
		children, err := lowerChildren(n.Children(), env, module, definition, d)
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: kind, Value: VariantValue{TyCon: tycon, Ctor: ctor}, Children: children, Location: loc}, nil

	case "enum":
		tycon := d.InternedDName(dnameIdx(n))
		ctor := d.InternedStr(strIdx2(n))
		return &Expr{Kind: kind, Value: VariantValue{TyCon: tycon, Ctor: ctor}, Location: loc}, nil

	case "app":
		children, err := lowerChildren(n.Children(), env, module, definition, d)
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: kind, Children: children, Location: loc}, nil

	case "ty_app":
		children, err := lowerChildren(n.Children(), env, module, definition, d)
		if err != nil {
			return nil, err
		}
		var typ *Type
		if tn, ok := n.TypeVal(); ok {
			typ = lowerType(tn, d)
		}
		return &Expr{Kind: kind, Typ: typ, Children: children, Location: loc}, nil

	case "lam":
		return lowerLam(n, env, module, definition, d, loc)

	case "ty_abs":
		name := d.InternedStr(strIdx(n))
		children, err := lowerChildren(n.Children(), env, module, definition, d)
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: kind, Value: name, Children: children, Location: loc}, nil

	case "case":
		return lowerCase(n, env, module, definition, d, loc)

	case "let":
		return lowerLet(n, env, module, definition, d, loc)

	case "binding", "field":
		name := d.InternedStr(strIdx(n))
		children, err := lowerChildren(n.Children(), env, module, definition, d)
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: kind, Value: name, Children: children, Location: loc}, nil

	case "list":
		children, err := lowerChildren(n.Children(), env, module, definition, d)
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: "list", Children: children, Location: loc}, nil

	case "nil":
		return &Expr{Kind: "list", Location: loc}, nil

	case "cons":
		return lowerCons(n, env, module, definition, d)

	case "optional":
		variant, _ := n.TextVal()
		var children []*Expr
		if variant == "some" {
			cs, err := lowerChildren(n.Children(), env, module, definition, d)
			if err != nil {
				return nil, err
			}
			children = cs
		}
		return &Expr{Kind: kind, Value: variant, Children: children, Location: loc}, nil

	case "to_any", "from_any", "to_any_exception", "from_any_exception", "throw", "type_rep":
		children, err := lowerChildren(n.Children(), env, module, definition, d)
		if err != nil {
			return nil, err
		}
		var typ *Type
		if tn, ok := n.TypeVal(); ok {
			typ = lowerType(tn, d)
		}
		return &Expr{Kind: kind, Typ: typ, Children: children, Location: loc}, nil

	case "to_interface", "from_interface", "unsafe_from_interface":
		iface := d.InternedDName(dnameIdx(n))
		tmpl := d.InternedDName(strIdx2AsDName(n))
		children, err := lowerChildren(n.Children(), env, module, definition, d)
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: kind, Value: InterfaceTemplateRef{Interface: iface, Template: tmpl}, Children: children, Location: loc}, nil

	case "call_interface", "view_interface", "signatory_interface", "observer_interface", "interface_template_type_rep":
		iface := d.InternedDName(dnameIdx(n))
		children, err := lowerChildren(n.Children(), env, module, definition, d)
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: kind, Value: InterfaceRef{Interface: iface}, Children: children, Location: loc}, nil

	case "to_required_interface", "from_required_interface", "unsafe_from_required_interface":
		required := d.InternedDName(dnameIdx(n))
		requiring := d.InternedDName(strIdx2AsDName(n))
		children, err := lowerChildren(n.Children(), env, module, definition, d)
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: kind, Value: RequiredRequiring{Required: required, Requiring: requiring}, Children: children, Location: loc}, nil

	case "choice_controller", "choice_observer":
		tmpl := d.InternedDName(dnameIdx(n))
		choice := d.InternedStr(strIdx2(n))
		children, err := lowerChildren(n.Children(), env, module, definition, d)
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: kind, Value: TemplateChoiceRef{Template: tmpl, Choice: choice}, Children: children, Location: loc}, nil

	case "experimental":
		name := d.InternedStr(strIdx(n))
		children, err := lowerChildren(n.Children(), env, module, definition, d)
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: kind, Value: name, Children: children, Location: loc}, nil

	case "key.projections", "key.record", "key.unknown":
		children, err := lowerChildren(n.Children(), env, module, definition, d)
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: kind, Children: children, Location: loc}, nil

	default:
		if isUpdateKind(kind) {
			return lowerUpdateLike(n, env, module, definition, d, loc, kind)
		}
		if isScenarioKind(kind) {
			if !d.allowsScenario() {
				return nil, lferrors.Newf(lferrors.Decode, "%s is not legal under Daml-LF v2", kind)
			}
			return lowerUpdateLike(n, env, module, definition, d, loc, kind)
		}
		return &Expr{Kind: "expr.unknown", Value: kind, Location: loc}, nil
	}
}

func isUpdateKind(kind string) bool {
	switch kind {
	case "update.pure", "update.block", "update.create", "update.create_interface",
		"update.exercise", "update.exercise_by_key", "update.exercise_interface",
		"update.dynamic_exercise", "update.soft_exercise", "update.fetch", "update.soft_fetch",
		"update.fetch_interface", "update.lookup_by_key", "update.fetch_by_key",
		"update.embed_expr", "update.try_catch", "update.get_time", "update.ledger_time_lt":
		return true
	}
	return false
}

func isScenarioKind(kind string) bool {
	switch kind {
	case "scenario.pure", "scenario.block", "scenario.commit", "scenario.mustFailAt",
		"scenario.pass", "scenario.get_time", "scenario.get_party", "scenario.embed_expr":
		return true
	}
	return false
}

// lowerUpdateLike handles every update.* and scenario.* kind: most carry a
// {template, choice} / {interface} style reference plus a fixed set of
// child expressions, which the wire producer is trusted to have shaped
// per the dialect's own contract (v2 omits the key child from
// lookup_by_key/fetch_by_key; v1 never emits update.ledger_time_lt).
func lowerUpdateLike(n decode.ExprNode, env typeEnv, module, definition string, d dialect, loc *Location, kind string) (*Expr, error) {
	if kind == "update.ledger_time_lt" && !d.allowsLedgerTimeLt() {
		return nil, lferrors.New(lferrors.Decode, "update.ledger_time_lt is not legal under Daml-LF v1")
	}

	children, err := lowerChildren(n.Children(), env, module, definition, d)
	if err != nil {
		return nil, err
	}

	var value any
	switch kind {
	case "update.create", "update.fetch", "update.soft_fetch", "update.lookup_by_key", "update.fetch_by_key":
		value = TemplateRef{Template: d.InternedDName(dnameIdx(n))}
	case "update.create_interface", "update.fetch_interface":
		value = InterfaceRef{Interface: d.InternedDName(dnameIdx(n))}
	case "update.exercise", "update.exercise_by_key", "update.dynamic_exercise", "update.soft_exercise":
		value = TemplateChoiceRef{Template: d.InternedDName(dnameIdx(n)), Choice: d.InternedStr(strIdx2(n))}
	case "update.exercise_interface":
		value = InterfaceChoiceRef{Interface: d.InternedDName(dnameIdx(n)), Choice: d.InternedStr(strIdx2(n))}
	case "scenario.get_party":
		value = d.InternedStr(strIdx(n))
	case "update.embed_expr":
		if tn, ok := n.TypeVal(); ok {
			value = lowerType(tn, d)
		}
	}

	return &Expr{Kind: kind, Value: value, Children: children, Location: loc}, nil
}

func lowerRecordLike(n decode.ExprNode, env typeEnv, module, definition string, d dialect, kind string, hasTyCon bool) (*Expr, error) {
	loc := lowerLocation(n.Location, module, definition)
	fields := n.Fields()
	names := make([]string, len(fields))
	children := make([]*Expr, 0, len(fields))
	for i, f := range fields {
		idx, _ := f.NameStrIdx()
		names[i] = d.InternedStr(idx)
		if fv, ok := f.Value(); ok {
			e, err := lowerExpr(fv, env, module, definition, d)
			if err != nil {
				return nil, err
			}
			children = append(children, e)
		}
	}
	if hasTyCon {
		tycon := d.InternedDName(dnameIdx(n))
		return &Expr{Kind: kind, Value: RecordValue{TyCon: tycon, Fields: names}, Children: children, Location: loc}, nil
	}
	return &Expr{Kind: kind, Value: StructValue{Fields: names}, Children: children, Location: loc}, nil
}

func lowerLam(n decode.ExprNode, env typeEnv, module, definition string, d dialect, loc *Location) (*Expr, error) {
	wireChildren := n.Children()
	if len(wireChildren) < 1 {
		return nil, lferrors.New(lferrors.Decode, "lam node has no body")
	}
	paramWires := wireChildren[:len(wireChildren)-1]
	bodyWire := wireChildren[len(wireChildren)-1]

	type param struct {
		name string
		typ  *Type
		loc  *Location
	}
	params := make([]param, 0, len(paramWires))
	bodyEnv := env
	for _, p := range paramWires {
		name := d.InternedStr(strIdx(p))
		var typ *Type
		if tn, ok := p.TypeVal(); ok {
			typ = lowerType(tn, d)
		}
		bodyEnv = bodyEnv.with(name, typ)
		params = append(params, param{name: name, typ: typ, loc: lowerLocation(p.Location, module, definition)})
	}

	body, err := lowerExpr(bodyWire, bodyEnv, module, definition, d)
	if err != nil {
		return nil, err
	}

	result := body
	for i := len(params) - 1; i >= 0; i-- {
		p := params[i]
		l := loc
		if i > 0 {
			l = p.loc
		}
		result = &Expr{Kind: "lam", Value: p.name, Typ: p.typ, Children: []*Expr{result}, Location: l}
	}
	return result, nil
}

func lowerCase(n decode.ExprNode, env typeEnv, module, definition string, d dialect, loc *Location) (*Expr, error) {
	wireChildren := n.Children()
	if len(wireChildren) < 1 {
		return nil, lferrors.New(lferrors.Decode, "case node has no scrutinee")
	}
	scrutinee, err := lowerExpr(wireChildren[0], env, module, definition, d)
	if err != nil {
		return nil, err
	}

	alts := n.CaseAlts()
	children := make([]*Expr, 0, 1+len(alts))
	children = append(children, scrutinee)
	patterns := make([]CaseAltPattern, 0, len(alts))
	for _, alt := range alts {
		body, ok := alt.Body()
		if !ok {
			continue
		}
		ctorIdx, _ := alt.CtorStrIdx()
		binderIdxs := alt.Binders()
		binders := make([]string, len(binderIdxs))
		for i, bi := range binderIdxs {
			binders[i] = d.InternedStr(int(bi))
		}
		altBody, err := lowerExpr(body, env, module, definition, d)
		if err != nil {
			return nil, err
		}
		children = append(children, altBody)
		patterns = append(patterns, CaseAltPattern{Tag: alt.Tag(), Ctor: d.InternedStr(ctorIdx), Binders: binders})
	}

	return &Expr{Kind: "case", Children: children, CaseAlts: patterns, Location: loc}, nil
}

func lowerLet(n decode.ExprNode, env typeEnv, module, definition string, d dialect, loc *Location) (*Expr, error) {
	wireChildren := n.Children()
	if len(wireChildren) < 1 {
		return nil, lferrors.New(lferrors.Decode, "let node has no body")
	}
	bindingsWire := wireChildren[:len(wireChildren)-1]
	bodyWire := wireChildren[len(wireChildren)-1]

	children := make([]*Expr, 0, len(wireChildren))
	curEnv := env
	for _, bw := range bindingsWire {
		name := d.InternedStr(strIdx(bw))
		bindingChildren := bw.Children()
		if len(bindingChildren) != 1 {
			return nil, lferrors.New(lferrors.Decode, "let binding must have exactly one bound expression")
		}
		boundExpr, err := lowerExpr(bindingChildren[0], curEnv, module, definition, d)
		if err != nil {
			return nil, err
		}
		bindingLoc := lowerLocation(bw.Location, module, definition)
		children = append(children, &Expr{Kind: "binding", Value: name, Children: []*Expr{boundExpr}, Location: bindingLoc})
		curEnv = curEnv.with(name, boundExpr.Typ)
	}

	body, err := lowerExpr(bodyWire, curEnv, module, definition, d)
	if err != nil {
		return nil, err
	}
	children = append(children, body)
	return &Expr{Kind: "let", Children: children, Location: loc}, nil
}

// lowerCons eagerly flattens a cons/nil chain into a list node when the
// tail is fully reachable, else keeps a cons node with a literal head
// prefix and a residual tail expression.
func lowerCons(n decode.ExprNode, env typeEnv, module, definition string, d dialect) (*Expr, error) {
	loc := lowerLocation(n.Location, module, definition)
	var heads []*Expr
	cur := n
	for cur.Valid() && cur.Kind() == "cons" {
		children := cur.Children()
		if len(children) != 2 {
			return nil, lferrors.New(lferrors.Decode, "cons node must have exactly 2 children")
		}
		head, err := lowerExpr(children[0], env, module, definition, d)
		if err != nil {
			return nil, err
		}
		heads = append(heads, head)
		cur = children[1]
	}

	if cur.Valid() && cur.Kind() == "nil" {
		return &Expr{Kind: "list", Children: heads, Location: loc}, nil
	}

	tail, err := lowerExpr(cur, env, module, definition, d)
	if err != nil {
		return nil, err
	}
	return &Expr{Kind: "cons", Children: append(heads, tail), Location: loc}, nil
}

func lowerChildren(ns []decode.ExprNode, env typeEnv, module, definition string, d dialect) ([]*Expr, error) {
	out := make([]*Expr, 0, len(ns))
	for _, c := range ns {
		e, err := lowerExpr(c, env, module, definition, d)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func strIdx(n decode.ExprNode) int    { i, _ := n.StrIdx(); return i }
func strIdx2(n decode.ExprNode) int   { i, _ := n.StrIdx2(); return i }
func dnameIdx(n decode.ExprNode) int  { i, _ := n.DNameIdx(); return i }

// strIdx2AsDName returns the node's second string index unchanged, for
// interface-coercion kinds whose callers resolve their second name (the
// template side of {interface, template}) through the dotted-name table.
func strIdx2AsDName(n decode.ExprNode) int { return strIdx2(n) }
