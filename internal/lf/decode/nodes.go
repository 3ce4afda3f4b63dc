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

package decode

import "github.com/daml-sast/daml-sast/internal/lf/wire"

// This file exposes typed accessors over the raw wire.Message tree for the
// Expr/Type/Field/PackageRef/CaseAlt/SourceSpan shapes defined in schema.go,
// so internal/ir's lowering stage never has to know a field number.

// ExprNode is one unresolved Expr wire node.
type ExprNode struct{ m *wire.Message }

// TemplateNode, ChoiceNode, etc. wrap their respective wire messages.
type (
	TemplateNode    struct{ m *wire.Message }
	TemplateKeyNode struct{ m *wire.Message }
	ChoiceNode      struct{ m *wire.Message }
	ValueDefNode    struct{ m *wire.Message }
	TypeNode        struct{ m *wire.Message }
	FieldNode       struct{ m *wire.Message }
	PackageRefNode  struct{ m *wire.Message }
	CaseAltNode     struct{ m *wire.Message }
	SpanNode        struct{ m *wire.Message }
)

// ModuleNode wraps a package's module wire message with accessors used by the
// lowering stage.
type ModuleNode struct{ m *wire.Message }

func wrapModules(msgs []*wire.Message) []ModuleNode {
	out := make([]ModuleNode, len(msgs))
	for i, m := range msgs {
		out[i] = ModuleNode{m}
	}
	return out
}

// ModuleNodes returns the package's module nodes in source order.
func (p *RawPackage) ModuleNodes() []ModuleNode { return wrapModules(p.Modules) }

func (n ModuleNode) NameDName() (int, bool) {
	v, ok := n.m.Int32(fieldModuleNameDName)
	return int(v), ok
}
func (n ModuleNode) Templates() []TemplateNode {
	subs := n.m.RepeatedSub(fieldModuleTemplates)
	out := make([]TemplateNode, len(subs))
	for i, s := range subs {
		out[i] = TemplateNode{s}
	}
	return out
}
func (n ModuleNode) Values() []ValueDefNode {
	subs := n.m.RepeatedSub(fieldModuleValues)
	out := make([]ValueDefNode, len(subs))
	for i, s := range subs {
		out[i] = ValueDefNode{s}
	}
	return out
}

func (n TemplateNode) NameDName() (int, bool) {
	v, ok := n.m.Int32(fieldTemplateNameDName)
	return int(v), ok
}
func (n TemplateNode) SelfParam() string { s, _ := n.m.String(fieldTemplateSelfParam); return s }
func (n TemplateNode) Signatories() (ExprNode, bool) {
	s, ok := n.m.Sub(fieldTemplateSignatories)
	return ExprNode{s}, ok
}
func (n TemplateNode) Observers() (ExprNode, bool) {
	s, ok := n.m.Sub(fieldTemplateObservers)
	return ExprNode{s}, ok
}
func (n TemplateNode) Precond() (ExprNode, bool) {
	s, ok := n.m.Sub(fieldTemplatePrecond)
	return ExprNode{s}, ok
}
func (n TemplateNode) Key() (TemplateKeyNode, bool) {
	s, ok := n.m.Sub(fieldTemplateKey)
	return TemplateKeyNode{s}, ok
}
func (n TemplateNode) Choices() []ChoiceNode {
	subs := n.m.RepeatedSub(fieldTemplateChoices)
	out := make([]ChoiceNode, len(subs))
	for i, s := range subs {
		out[i] = ChoiceNode{s}
	}
	return out
}
func (n TemplateNode) Location() (SpanNode, bool) {
	s, ok := n.m.Sub(fieldTemplateLocation)
	return SpanNode{s}, ok
}

func (n TemplateKeyNode) Type() (TypeNode, bool) {
	s, ok := n.m.Sub(fieldKeyType)
	return TypeNode{s}, ok
}
func (n TemplateKeyNode) Body() (ExprNode, bool) {
	s, ok := n.m.Sub(fieldKeyBody)
	return ExprNode{s}, ok
}
func (n TemplateKeyNode) Maintainers() (ExprNode, bool) {
	s, ok := n.m.Sub(fieldKeyMaintainers)
	return ExprNode{s}, ok
}

func (n ChoiceNode) NameStrIdx() (int, bool) {
	v, ok := n.m.Int32(fieldChoiceNameStrIdx)
	return int(v), ok
}
func (n ChoiceNode) Consuming() bool { b, _ := n.m.Bool(fieldChoiceConsuming); return b }
func (n ChoiceNode) Controllers() (ExprNode, bool) {
	s, ok := n.m.Sub(fieldChoiceControllers)
	return ExprNode{s}, ok
}
func (n ChoiceNode) Observers() (ExprNode, bool) {
	s, ok := n.m.Sub(fieldChoiceObservers)
	return ExprNode{s}, ok
}
func (n ChoiceNode) Authorizers() (ExprNode, bool) {
	s, ok := n.m.Sub(fieldChoiceAuthorizers)
	return ExprNode{s}, ok
}
func (n ChoiceNode) ReturnType() (TypeNode, bool) {
	s, ok := n.m.Sub(fieldChoiceReturnType)
	return TypeNode{s}, ok
}
func (n ChoiceNode) Update() (ExprNode, bool) {
	s, ok := n.m.Sub(fieldChoiceUpdate)
	return ExprNode{s}, ok
}
func (n ChoiceNode) Location() (SpanNode, bool) {
	s, ok := n.m.Sub(fieldChoiceLocation)
	return SpanNode{s}, ok
}

func (n ValueDefNode) NameDName() (int, bool) {
	v, ok := n.m.Int32(fieldValueNameDName)
	return int(v), ok
}
func (n ValueDefNode) Body() (ExprNode, bool) {
	s, ok := n.m.Sub(fieldValueBody)
	return ExprNode{s}, ok
}
func (n ValueDefNode) Location() (SpanNode, bool) {
	s, ok := n.m.Sub(fieldValueLocation)
	return SpanNode{s}, ok
}

func (n SpanNode) File() (string, bool)  { return n.m.String(fieldSpanFile) }
func (n SpanNode) StartLine() int32      { v, _ := n.m.Int32(fieldSpanStartLine); return v }
func (n SpanNode) StartCol() int32       { v, _ := n.m.Int32(fieldSpanStartCol); return v }
func (n SpanNode) EndLine() int32        { v, _ := n.m.Int32(fieldSpanEndLine); return v }
func (n SpanNode) EndCol() int32         { v, _ := n.m.Int32(fieldSpanEndCol); return v }

func (n TypeNode) Tag() string { s, _ := n.m.String(fieldTypeTag); return s }
func (n TypeNode) NameIdx() (int, bool) {
	v, ok := n.m.Int32(fieldTypeNameIdx)
	return int(v), ok
}
func (n TypeNode) Args() []TypeNode {
	subs := n.m.RepeatedSub(fieldTypeArgs)
	out := make([]TypeNode, len(subs))
	for i, s := range subs {
		out[i] = TypeNode{s}
	}
	return out
}

func (n ExprNode) Valid() bool   { return n.m != nil }
func (n ExprNode) Kind() string  { s, _ := n.m.String(fieldExprKind); return s }
func (n ExprNode) StrIdx() (int, bool) {
	v, ok := n.m.Int32(fieldExprStrIdx)
	return int(v), ok
}
func (n ExprNode) StrIdx2() (int, bool) {
	v, ok := n.m.Int32(fieldExprStrIdx2)
	return int(v), ok
}
func (n ExprNode) DNameIdx() (int, bool) {
	v, ok := n.m.Int32(fieldExprDNameIdx)
	return int(v), ok
}
func (n ExprNode) IntVal() (int64, bool) {
	v, ok := n.m.Varint(fieldExprIntVal)
	return int64(v), ok
}
func (n ExprNode) BoolVal() bool { b, _ := n.m.Bool(fieldExprBoolVal); return b }
func (n ExprNode) TextVal() (string, bool) {
	return n.m.String(fieldExprTextVal)
}
func (n ExprNode) TypeVal() (TypeNode, bool) {
	s, ok := n.m.Sub(fieldExprTypeVal)
	return TypeNode{s}, ok
}
func (n ExprNode) PackageRef() (PackageRefNode, bool) {
	s, ok := n.m.Sub(fieldExprPackageRef)
	return PackageRefNode{s}, ok
}
func (n ExprNode) Fields() []FieldNode {
	subs := n.m.RepeatedSub(fieldExprFields)
	out := make([]FieldNode, len(subs))
	for i, s := range subs {
		out[i] = FieldNode{s}
	}
	return out
}
func (n ExprNode) Children() []ExprNode {
	subs := n.m.RepeatedSub(fieldExprChildren)
	out := make([]ExprNode, len(subs))
	for i, s := range subs {
		out[i] = ExprNode{s}
	}
	return out
}
func (n ExprNode) Location() (SpanNode, bool) {
	s, ok := n.m.Sub(fieldExprLocation)
	return SpanNode{s}, ok
}
func (n ExprNode) CaseAlts() []CaseAltNode {
	subs := n.m.RepeatedSub(fieldExprCaseAlts)
	out := make([]CaseAltNode, len(subs))
	for i, s := range subs {
		out[i] = CaseAltNode{s}
	}
	return out
}

func (n FieldNode) NameStrIdx() (int, bool) {
	v, ok := n.m.Int32(fieldFieldNameStrIdx)
	return int(v), ok
}
func (n FieldNode) Value() (ExprNode, bool) {
	s, ok := n.m.Sub(fieldFieldValue)
	return ExprNode{s}, ok
}

// v1's PackageRef oneof: field 1 is a bool, true meaning "self"; false (or
// absent) means the reference instead carries a direct interned-string
// index (field 2) naming the target package id. v1 has no per-package
// imports table, so there is no import-index field in this shape at all.
func (n PackageRefNode) SelfV1() bool { b, _ := n.m.Bool(fieldPackageRefV1Self); return b }
func (n PackageRefNode) PackageIDStrIdxV1() (int, bool) {
	v, ok := n.m.Int32(fieldPackageRefV1PackageIDStrIdx)
	return int(v), ok
}

// v2's PackageRef oneof: field 1 is a string tag, "self" or "import";
// "import" carries an index (field 2) into the enclosing package's
// imports table rather than a direct package-id string.
func (n PackageRefNode) TagV2() string { s, _ := n.m.String(fieldPackageRefV2Tag); return s }
func (n PackageRefNode) ImportIdxV2() (int, bool) {
	v, ok := n.m.Int32(fieldPackageRefV2ImportIdx)
	return int(v), ok
}

func (n CaseAltNode) Tag() string { s, _ := n.m.String(fieldCaseAltTag); return s }
func (n CaseAltNode) CtorStrIdx() (int, bool) {
	v, ok := n.m.Int32(fieldCaseAltCtor)
	return int(v), ok
}
func (n CaseAltNode) Binders() []int32 { return n.m.RepeatedInt32(fieldCaseAltBinders) }
func (n CaseAltNode) Body() (ExprNode, bool) {
	s, ok := n.m.Sub(fieldCaseAltBody)
	return ExprNode{s}, ok
}
