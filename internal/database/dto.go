// Copyright 2024 The cppbind Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package database

// DTOs mirror kati's serialize.go pattern: a sum type (Path's
// template-argument interface, the CppType tagged union, the C++ item
// tagged union, the FFI item union, the TL item union) is flattened
// into a tagged struct with one optional payload field per variant —
// exactly how kati's serializableVar carries a "Type string" tag plus
// the fields relevant to that type, rather than leaning on gob's
// interface-registration machinery.

import (
	"github.com/cppbind/cppbind/internal/cppitem"
	"github.com/cppbind/cppbind/internal/cpppath"
	"github.com/cppbind/cppbind/internal/cpptype"
	"github.com/cppbind/cppbind/internal/ffi"
)

type pathItemDTO struct {
	Name string
	Template []cppTypeDTO
}

type pathDTO struct {
	Items []pathItemDTO
}

func pathToDTO(p cpppath.Path) pathDTO {
	items := make([]pathItemDTO, len(p.Items()))
	for i, it := range p.Items() {
		var tmpl []cppTypeDTO
		for _, arg := range it.Template {
			if t, ok := arg.(cpptype.Type); ok {
				tmpl = append(tmpl, cppTypeToDTO(t))
			}
		}
		items[i] = pathItemDTO{Name: it.Name, Template: tmpl}
	}
	return pathDTO{Items: items}
}

func dtoToPath(d pathDTO) cpppath.Path {
	items := make([]cpppath.Item, len(d.Items))
	for i, it := range d.Items {
		var tmpl []cpppath.TemplateArg
		for _, t := range it.Template {
			tmpl = append(tmpl, dtoToCppType(t))
		}
		items[i] = cpppath.Item{Name: it.Name, Template: tmpl}
	}
	if len(items) == 0 {
		return cpppath.Path{}
	}
	return cpppath.New(items...)
}

type cppTypeDTO struct {
	Kind int
	BuiltIn int
	Path *pathDTO
	BitWidth int
	Floating bool
	Signed bool
	NestedLevel int
	Index int
	ParamName string
	Return *cppTypeDTO
	Args []cppTypeDTO
	Variadic bool
	PointerKind int
	IsConst bool
	Target *cppTypeDTO
}

func cppTypeToDTO(t cpptype.Type) cppTypeDTO {
	d := cppTypeDTO{
		Kind: int(t.Kind), BuiltIn: int(t.BuiltIn), BitWidth: t.BitWidth,
		Floating: t.Floating, Signed: t.Signed, NestedLevel: t.NestedLevel,
		Index: t.Index, ParamName: t.ParamName, Variadic: t.Variadic,
		PointerKind: int(t.PointerKind), IsConst: t.IsConst,
	}
	switch t.Kind {
	case cpptype.KindSpecificNumeric, cpptype.KindPointerSizedInteger, cpptype.KindEnum, cpptype.KindClass:
		p := pathToDTO(t.Path)
		d.Path = &p
	case cpptype.KindFunctionPointer:
		ret := cppTypeToDTO(*t.Return)
		d.Return = &ret
		d.Args = make([]cppTypeDTO, len(t.Args))
		for i, a := range t.Args {
			d.Args[i] = cppTypeToDTO(a)
		}
	case cpptype.KindPointerLike:
		tgt := cppTypeToDTO(*t.Target)
		d.Target = &tgt
	}
	return d
}

func dtoToCppType(d cppTypeDTO) cpptype.Type {
	t := cpptype.Type{
		Kind: cpptype.Kind(d.Kind), BuiltIn: cpptype.BuiltIn(d.BuiltIn), BitWidth: d.BitWidth,
		Floating: d.Floating, Signed: d.Signed, NestedLevel: d.NestedLevel,
		Index: d.Index, ParamName: d.ParamName, Variadic: d.Variadic,
		PointerKind: cpptype.PointerKind(d.PointerKind), IsConst: d.IsConst,
	}
	if d.Path != nil {
		t.Path = dtoToPath(*d.Path)
	}
	if d.Return != nil {
		r := dtoToCppType(*d.Return)
		t.Return = &r
	}
	if len(d.Args) > 0 {
		t.Args = make([]cpptype.Type, len(d.Args))
		for i, a := range d.Args {
			t.Args[i] = dtoToCppType(a)
		}
	}
	if d.Target != nil {
		tg := dtoToCppType(*d.Target)
		t.Target = &tg
	}
	return t
}

type operatorDTO struct {
	Kind int
	ConvertTo cppTypeDTO
}

type argumentDTO struct {
	Name string
	Type cppTypeDTO
	HasDefault bool
}

type memberDataDTO struct {
	Kind int
	Virtual bool
	PureVirtual bool
	Const bool
	Static bool
	Visibility int
	Signal bool
	Slot bool
}

type cppFunctionDTO struct {
	Path pathDTO
	Member *memberDataDTO
	Operator *operatorDTO
	Return cppTypeDTO
	Arguments []argumentDTO
	Variadic bool
	Decl string
	Doc string
}

func cppFunctionToDTO(f cppitem.CppFunction) cppFunctionDTO {
	d := cppFunctionDTO{
		Path: pathToDTO(f.P), Return: cppTypeToDTO(f.Return), Variadic: f.Variadic,
		Decl: f.Decl, Doc: f.Doc,
	}
	if f.Member != nil {
		d.Member = &memberDataDTO{
			Kind: int(f.Member.Kind), Virtual: f.Member.Virtual, PureVirtual: f.Member.PureVirtual,
			Const: f.Member.Const, Static: f.Member.Static, Visibility: int(f.Member.Visibility),
			Signal: f.Member.Signal, Slot: f.Member.Slot,
		}
	}
	if f.Operator != nil {
		d.Operator = &operatorDTO{Kind: int(f.Operator.Kind), ConvertTo: cppTypeToDTO(f.Operator.ConvertTo)}
	}
	for _, a := range f.Arguments {
		d.Arguments = append(d.Arguments, argumentDTO{Name: a.Name, Type: cppTypeToDTO(a.Type), HasDefault: a.HasDefault})
	}
	return d
}

func dtoToCppFunction(d cppFunctionDTO) cppitem.CppFunction {
	f := cppitem.CppFunction{
		P: dtoToPath(d.Path), Return: dtoToCppType(d.Return), Variadic: d.Variadic,
		Decl: d.Decl, Doc: d.Doc,
	}
	if d.Member != nil {
		f.Member = &cppitem.MemberData{
			Kind: cppitem.MemberKind(d.Member.Kind), Virtual: d.Member.Virtual, PureVirtual: d.Member.PureVirtual,
			Const: d.Member.Const, Static: d.Member.Static, Visibility: cppitem.Visibility(d.Member.Visibility),
			Signal: d.Member.Signal, Slot: d.Member.Slot,
		}
	}
	if d.Operator != nil {
		f.Operator = &cppitem.Operator{Kind: cppitem.OperatorKind(d.Operator.Kind), ConvertTo: dtoToCppType(d.Operator.ConvertTo)}
	}
	for _, a := range d.Arguments {
		f.Arguments = append(f.Arguments, cppitem.Argument{Name: a.Name, Type: dtoToCppType(a.Type), HasDefault: a.HasDefault})
	}
	return f
}

// itemDTO flattens the cppitem.Item tagged union, one optional payload
// field per variant (kati's "serializableVar.Type" pattern).
type itemDTO struct {
	Kind string
	Namespace *pathDTO
	Type *typeItemDTO
	EnumValue *enumValueDTO
	ClassField *classFieldDTO
	ClassBase *classBaseDTO
	Function *cppFunctionDTO
}

type typeItemDTO struct {
	Path pathDTO
	Kind int
	Polymorphic bool
}

type enumValueDTO struct {
	Path pathDTO
	Value int64
	Doc string
}

type classFieldDTO struct {
	Path pathDTO
	FieldType cppTypeDTO
	Visibility int
	IsStatic bool
}

type classBaseDTO struct {
	Derived pathDTO
	Base pathDTO
	BaseIndex int
	IsVirtual bool
	Visibility int
}

func itemToDTO(item cppitem.Item) itemDTO {
	switch v := item.(type) {
	case cppitem.Namespace:
		p := pathToDTO(v.P)
		return itemDTO{Kind: "Namespace", Namespace: &p}
	case cppitem.Type:
		return itemDTO{Kind: "Type", Type: &typeItemDTO{Path: pathToDTO(v.P), Kind: int(v.Kind), Polymorphic: v.Polymorphic}}
	case cppitem.EnumValue:
		return itemDTO{Kind: "EnumValue", EnumValue: &enumValueDTO{Path: pathToDTO(v.P), Value: v.Value, Doc: v.Doc}}
	case cppitem.ClassField:
		return itemDTO{Kind: "ClassField", ClassField: &classFieldDTO{
			Path: pathToDTO(v.P), FieldType: cppTypeToDTO(v.FieldType), Visibility: int(v.Visibility), IsStatic: v.IsStatic,
		}}
	case cppitem.ClassBase:
		return itemDTO{Kind: "ClassBase", ClassBase: &classBaseDTO{
			Derived: pathToDTO(v.Derived), Base: pathToDTO(v.Base), BaseIndex: v.BaseIndex,
			IsVirtual: v.IsVirtual, Visibility: int(v.Visibility),
		}}
	case cppitem.CppFunction:
		d := cppFunctionToDTO(v)
		return itemDTO{Kind: "Function", Function: &d}
	default:
		panic("database: itemToDTO called on unknown item variant")
	}
}

func dtoToItem(d itemDTO) cppitem.Item {
	switch d.Kind {
	case "Namespace":
		return cppitem.Namespace{P: dtoToPath(*d.Namespace)}
	case "Type":
		return cppitem.Type{P: dtoToPath(d.Type.Path), Kind: cppitem.TypeKind(d.Type.Kind), Polymorphic: d.Type.Polymorphic}
	case "EnumValue":
		return cppitem.EnumValue{P: dtoToPath(d.EnumValue.Path), Value: d.EnumValue.Value, Doc: d.EnumValue.Doc}
	case "ClassField":
		return cppitem.ClassField{
			P: dtoToPath(d.ClassField.Path), FieldType: dtoToCppType(d.ClassField.FieldType),
			Visibility: cppitem.Visibility(d.ClassField.Visibility), IsStatic: d.ClassField.IsStatic,
		}
	case "ClassBase":
		return cppitem.ClassBase{
			Derived: dtoToPath(d.ClassBase.Derived), Base: dtoToPath(d.ClassBase.Base),
			BaseIndex: d.ClassBase.BaseIndex, IsVirtual: d.ClassBase.IsVirtual,
			Visibility: cppitem.Visibility(d.ClassBase.Visibility),
		}
	case "Function":
		return dtoToCppFunction(*d.Function)
	default:
		panic("database: dtoToItem called on unknown Kind " + d.Kind)
	}
}

type ffiTypeDTO struct {
	Original cppTypeDTO
	Lowered cppTypeDTO
	Conversion int
	FfiConst bool
}

func ffiTypeToDTO(t ffi.Type) ffiTypeDTO {
	return ffiTypeDTO{Original: cppTypeToDTO(t.Original), Lowered: cppTypeToDTO(t.Lowered), Conversion: int(t.Conversion), FfiConst: t.FfiConst}
}

func dtoToFfiType(d ffiTypeDTO) ffi.Type {
	return ffi.Type{Original: dtoToCppType(d.Original), Lowered: dtoToCppType(d.Lowered), Conversion: ffi.ConversionTag(d.Conversion), FfiConst: d.FfiConst}
}

type ffiArgumentDTO struct {
	Name string
	Type ffiTypeDTO
	Meaning int
	Index int
}

type ffiFunctionDTO struct {
	Path pathDTO
	Arguments []ffiArgumentDTO
	Return ffiTypeDTO
	AllocationPlace int
	Kind int
	Plain *plainFunctionDTO
	Accessor *fieldAccessorDTO
}

type plainFunctionDTO struct {
	Origin cppFunctionDTO
	OmittedArgumentCount int
	Cast *castDescriptorDTO
}

type castDescriptorDTO struct {
	Kind int
	Unsafe bool
	BaseIndex int
}

type fieldAccessorDTO struct {
	Field classFieldDTO
	Flavour int
}

func ffiFunctionToDTO(f ffi.Function) ffiFunctionDTO {
	d := ffiFunctionDTO{
		Path: pathToDTO(f.Path), Return: ffiTypeToDTO(f.Return),
		AllocationPlace: int(f.AllocationPlace), Kind: int(f.Kind),
	}
	for _, a := range f.Arguments {
		d.Arguments = append(d.Arguments, ffiArgumentDTO{Name: a.Name, Type: ffiTypeToDTO(a.Type), Meaning: int(a.Meaning), Index: a.Index})
	}
	if f.Plain != nil {
		p := &plainFunctionDTO{Origin: cppFunctionToDTO(f.Plain.Origin), OmittedArgumentCount: f.Plain.OmittedArgumentCount}
		if f.Plain.Cast != nil {
			p.Cast = &castDescriptorDTO{Kind: int(f.Plain.Cast.Kind), Unsafe: f.Plain.Cast.Unsafe, BaseIndex: f.Plain.Cast.BaseIndex}
		}
		d.Plain = p
	}
	if f.Accessor != nil {
		d.Accessor = &fieldAccessorDTO{
			Field: classFieldDTO{
				Path: pathToDTO(f.Accessor.Field.P), FieldType: cppTypeToDTO(f.Accessor.Field.FieldType),
				Visibility: int(f.Accessor.Field.Visibility), IsStatic: f.Accessor.Field.IsStatic,
			},
			Flavour: int(f.Accessor.Flavour),
		}
	}
	return d
}

func dtoToFfiFunction(d ffiFunctionDTO) ffi.Function {
	f := ffi.Function{
		Path: dtoToPath(d.Path), Return: dtoToFfiType(d.Return),
		AllocationPlace: ffi.AllocationPlace(d.AllocationPlace), Kind: ffi.FunctionKind(d.Kind),
	}
	for _, a := range d.Arguments {
		f.Arguments = append(f.Arguments, ffi.Argument{Name: a.Name, Type: dtoToFfiType(a.Type), Meaning: ffi.ArgumentMeaning(a.Meaning), Index: a.Index})
	}
	if d.Plain != nil {
		p := &ffi.PlainFunctionData{Origin: dtoToCppFunction(d.Plain.Origin), OmittedArgumentCount: d.Plain.OmittedArgumentCount}
		if d.Plain.Cast != nil {
			p.Cast = &ffi.CastDescriptor{Kind: ffi.CastKind(d.Plain.Cast.Kind), Unsafe: d.Plain.Cast.Unsafe, BaseIndex: d.Plain.Cast.BaseIndex}
		}
		f.Plain = p
	}
	if d.Accessor != nil {
		f.Accessor = &ffi.FieldAccessorData{
			Field: cppitem.ClassField{
				P: dtoToPath(d.Accessor.Field.Path), FieldType: dtoToCppType(d.Accessor.Field.FieldType),
				Visibility: cppitem.Visibility(d.Accessor.Field.Visibility), IsStatic: d.Accessor.Field.IsStatic,
			},
			Flavour: ffi.AccessorFlavour(d.Accessor.Flavour),
		}
	}
	return f
}

type slotWrapperDTO struct {
	ClassPath pathDTO
	SignalArgTypes []cppTypeDTO
	FfiArgTypes []ffiTypeDTO
	FunctionPointerType cppTypeDTO
}

func ffiItemToDTO(item ffi.Item) (fn *ffiFunctionDTO, slot *slotWrapperDTO) {
	if item.Function != nil {
		d := ffiFunctionToDTO(*item.Function)
		fn = &d
	}
	if item.Slot != nil {
		s := slotWrapperDTO{ClassPath: pathToDTO(item.Slot.ClassPath), FunctionPointerType: cppTypeToDTO(item.Slot.FunctionPointerType)}
		for _, t := range item.Slot.SignalArgTypes {
			s.SignalArgTypes = append(s.SignalArgTypes, cppTypeToDTO(t))
		}
		for _, t := range item.Slot.FfiArgTypes {
			s.FfiArgTypes = append(s.FfiArgTypes, ffiTypeToDTO(t))
		}
		slot = &s
	}
	return fn, slot
}

func dtoToFfiItem(fn *ffiFunctionDTO, slot *slotWrapperDTO) ffi.Item {
	var item ffi.Item
	if fn != nil {
		f := dtoToFfiFunction(*fn)
		item.Function = &f
	}
	if slot != nil {
		s := ffi.SlotWrapper{ClassPath: dtoToPath(slot.ClassPath), FunctionPointerType: dtoToCppType(slot.FunctionPointerType)}
		for _, t := range slot.SignalArgTypes {
			s.SignalArgTypes = append(s.SignalArgTypes, dtoToCppType(t))
		}
		for _, t := range slot.FfiArgTypes {
			s.FfiArgTypes = append(s.FfiArgTypes, dtoToFfiType(t))
		}
		item.Slot = &s
	}
	return item
}
