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
	"github.com/daml-sast/daml-sast/internal/lf/resolve"
)

// resolver is the identifier-resolution surface lowering needs. Both
// dialect resolvers satisfy it by embedding resolve.Base, factoring the
// shared lookup logic out of the per-dialect adapters.
type resolver interface {
	InternedStr(i int) string
	InternedDName(i int) string
	FQNWithPackage(pkg, module, name string) string
	PackageRef(ref decode.PackageRefNode) string
}

// dialect adapts the shared lowering switch to one wire dialect: which
// resolver to use, which package id anchors "self" references, and which
// kind families are legal (v1 carries scenario.*, v2 carries
// update.ledger_time_lt).
type dialect struct {
	resolver
	major         int
	selfPackageID string
}

func (d dialect) allowsScenario() bool       { return d.major == 1 }
func (d dialect) allowsLedgerTimeLt() bool   { return d.major == 2 }

func (d dialect) qualify(pkgID, dotted string) string {
	if pkgID == "" || pkgID == d.selfPackageID {
		return dotted
	}
	return pkgID + ":" + dotted
}

// typeEnv threads variable-binding types through lowering so `var` nodes
// can be decorated with their current type, for the "party-list variable"
// heuristic downstream rules rely on.
type typeEnv map[string]*Type

func (e typeEnv) with(name string, t *Type) typeEnv {
	out := make(typeEnv, len(e)+1)
	for k, v := range e {
		out[k] = v
	}
	if t != nil {
		out[name] = t
	}
	return out
}

// LowerPackage translates a decoded raw package into the unified IR,
// dispatching to the v1 or v2 adapter once, at the top.
func LowerPackage(raw *decode.RawPackage) (*Package, error) {
	var d dialect
	switch raw.Dialect {
	case 1:
		d = dialect{resolver: resolve.NewLf1(raw), major: 1, selfPackageID: raw.PackageID}
	case 2:
		d = dialect{resolver: resolve.NewLf2(raw), major: 2, selfPackageID: raw.PackageID}
	default:
		return nil, lferrors.Newf(lferrors.Decode, "unknown dialect major version %d", raw.Dialect)
	}

	pkg := &Package{
		ID:           raw.PackageID,
		Name:         raw.Name,
		Version:      raw.PackageVersion,
		DialectMajor: raw.Dialect,
	}
	for _, mn := range raw.ModuleNodes() {
		mod, err := lowerModule(mn, d)
		if err != nil {
			return nil, err
		}
		pkg.Modules = append(pkg.Modules, mod)
	}
	return pkg, nil
}

func lowerModule(n decode.ModuleNode, d dialect) (*Module, error) {
	idx, _ := n.NameDName()
	name := d.InternedDName(idx)
	mod := &Module{Name: name}

	for _, tn := range n.Templates() {
		tmpl, err := lowerTemplate(tn, name, d)
		if err != nil {
			return nil, err
		}
		mod.Templates = append(mod.Templates, tmpl)
	}
	for _, vn := range n.Values() {
		val, err := lowerValueDef(vn, name, d)
		if err != nil {
			return nil, err
		}
		mod.Values = append(mod.Values, val)
	}
	return mod, nil
}

func lowerTemplate(n decode.TemplateNode, module string, d dialect) (*Template, error) {
	idx, _ := n.NameDName()
	tycon := d.InternedDName(idx)
	fqName := module + "." + tycon

	tmpl := &Template{
		Name:       fqName,
		SelfBinder: n.SelfParam(),
		Location:   lowerLocation(n.Location, module, fqName),
	}

	env := typeEnv{}
	if sig, ok := n.Signatories(); ok {
		e, err := lowerExpr(sig, env, module, fqName, d)
		if err != nil {
			return nil, err
		}
		tmpl.Signatories = e
	}
	if obs, ok := n.Observers(); ok {
		e, err := lowerExpr(obs, env, module, fqName, d)
		if err != nil {
			return nil, err
		}
		tmpl.Observers = e
	}
	if pre, ok := n.Precond(); ok {
		e, err := lowerExpr(pre, env, module, fqName, d)
		if err != nil {
			return nil, err
		}
		tmpl.Precond = e
	}
	if key, ok := n.Key(); ok {
		k, err := lowerTemplateKey(key, env, module, fqName, d)
		if err != nil {
			return nil, err
		}
		tmpl.Key = k
	}
	for _, cn := range n.Choices() {
		ch, err := lowerChoice(cn, env, module, fqName, d)
		if err != nil {
			return nil, err
		}
		tmpl.Choices = append(tmpl.Choices, ch)
	}
	return tmpl, nil
}

func lowerTemplateKey(n decode.TemplateKeyNode, env typeEnv, module, template string, d dialect) (*TemplateKey, error) {
	k := &TemplateKey{}
	if tn, ok := n.Type(); ok {
		k.Typ = lowerType(tn, d)
	}
	if body, ok := n.Body(); ok {
		e, err := lowerExpr(body, env, module, template, d)
		if err != nil {
			return nil, err
		}
		k.Body = e
	}
	if maint, ok := n.Maintainers(); ok {
		e, err := lowerExpr(maint, env, module, template, d)
		if err != nil {
			return nil, err
		}
		k.Maintainers = e
	}
	return k, nil
}

func lowerChoice(n decode.ChoiceNode, env typeEnv, module, template string, d dialect) (*Choice, error) {
	nameIdx, _ := n.NameStrIdx()
	name := d.InternedStr(nameIdx)
	def := template + "." + name

	ch := &Choice{
		Name:      name,
		Consuming: n.Consuming(),
		Location:  lowerLocation(n.Location, module, def),
	}
	if rt, ok := n.ReturnType(); ok {
		ch.ReturnType = lowerType(rt, d)
	}
	if c, ok := n.Controllers(); ok {
		e, err := lowerExpr(c, env, module, def, d)
		if err != nil {
			return nil, err
		}
		ch.Controllers = e
	}
	if o, ok := n.Observers(); ok {
		e, err := lowerExpr(o, env, module, def, d)
		if err != nil {
			return nil, err
		}
		ch.Observers = e
	}
	if a, ok := n.Authorizers(); ok {
		e, err := lowerExpr(a, env, module, def, d)
		if err != nil {
			return nil, err
		}
		ch.Authorizers = e
	}
	if u, ok := n.Update(); ok {
		e, err := lowerExpr(u, env, module, def, d)
		if err != nil {
			return nil, err
		}
		ch.Update = e
	}
	return ch, nil
}

func lowerValueDef(n decode.ValueDefNode, module string, d dialect) (*ValueDef, error) {
	idx, _ := n.NameDName()
	name := d.InternedDName(idx)
	def := name

	val := &ValueDef{Name: name, Location: lowerLocation(n.Location, module, def)}
	if b, ok := n.Body(); ok {
		e, err := lowerExpr(b, typeEnv{}, module, def, d)
		if err != nil {
			return nil, err
		}
		val.Body = e
	}
	return val, nil
}

func lowerType(n decode.TypeNode, d dialect) *Type {
	t := &Type{Tag: n.Tag()}
	if idx, ok := n.NameIdx(); ok {
		t.Name = d.InternedStr(idx)
	}
	for _, a := range n.Args() {
		t.Args = append(t.Args, lowerType(a, d))
	}
	return t
}

func lowerLocation(locFn func() (decode.SpanNode, bool), module, definition string) *Location {
	span, ok := locFn()
	if !ok {
		return &Location{Module: module, Definition: definition}
	}
	file, _ := span.File()
	return &Location{
		Module:     module,
		Definition: definition,
		Span: &SourceSpan{
			File:      file,
			StartLine: int(span.StartLine()) + 1,
			StartCol:  int(span.StartCol()) + 1,
			EndLine:   int(span.EndLine()) + 1,
			EndCol:    int(span.EndCol()) + 1,
		},
	}
}
