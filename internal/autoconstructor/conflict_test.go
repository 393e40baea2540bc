package autoconstructor

import (
	"errors"
	"slices"
	"testing"
)

func TestDetectConflicts(t *testing.T) {
	t.Parallel()

	otherGuid := &Type{Name: "Other.Guid", Key: "Other.Guid", Kind: KindValue}

	tests := []struct {
		name        string
		descriptors []Descriptor
		wantParams  []string
	}{
		{
			name: "explicit types disagree",
			descriptors: []Descriptor{
				{ParameterName: "guid", InjectedType: tGuid, DeclaredType: tString},
				{ParameterName: "guid", InjectedType: tString, DeclaredType: tString},
			},
			wantParams: []string{"guid"},
		},
		{
			name: "fallback types disagree",
			descriptors: []Descriptor{
				{ParameterName: "guid", DeclaredType: tString},
				{ParameterName: "guid", DeclaredType: tGuid},
			},
			wantParams: []string{"guid"},
		},
		{
			name: "explicit type settles fallbacks",
			descriptors: []Descriptor{
				{ParameterName: "guid", InjectedType: tGuid, DeclaredType: tString},
				{ParameterName: "guid", DeclaredType: tDateTime},
			},
		},
		{
			name: "same explicit type",
			descriptors: []Descriptor{
				{ParameterName: "injected", InjectedType: tInt, DeclaredType: tInt},
				{ParameterName: "injected", InjectedType: tInt, DeclaredType: tString},
			},
		},
		{
			name: "same short name different types",
			descriptors: []Descriptor{
				{ParameterName: "guid", DeclaredType: tGuid},
				{ParameterName: "guid", DeclaredType: otherGuid},
			},
			wantParams: []string{"guid"},
		},
		{
			name: "reference annotation does not conflict",
			descriptors: []Descriptor{
				{ParameterName: "s", DeclaredType: tString},
				{ParameterName: "s", DeclaredType: annotated(tString)},
			},
		},
		{
			name: "forwarded parameter disagrees with base",
			descriptors: []Descriptor{
				{ParameterName: "t", InjectedType: tString, DeclaredType: tString, Role: RoleInitialized | RolePassedToBase, BaseType: tInt},
			},
			wantParams: []string{"t"},
		},
		{
			name: "forwarded parameter matches base",
			descriptors: []Descriptor{
				{ParameterName: "t", InjectedType: tInt, DeclaredType: tInt, Role: RoleInitialized | RolePassedToBase, BaseType: tInt},
			},
		},
		{
			name: "every conflicting name is reported",
			descriptors: []Descriptor{
				{ParameterName: "a", DeclaredType: tString},
				{ParameterName: "b", DeclaredType: tInt},
				{ParameterName: "a", DeclaredType: tInt},
				{ParameterName: "b", DeclaredType: tString},
				{ParameterName: "c", DeclaredType: tInt},
			},
			wantParams: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			decl := annotatedDecl("Test")
			err := DetectConflicts(decl, tt.descriptors)

			if tt.wantParams == nil {
				if err != nil {
					t.Fatalf("DetectConflicts() error = %v, want nil", err)
				}
				return
			}

			var conflict *ConflictError
			if !errors.As(err, &conflict) {
				t.Fatalf("DetectConflicts() error = %v, want *ConflictError", err)
			}
			if got := conflict.Parameters(); !slices.Equal(got, tt.wantParams) {
				t.Errorf("conflicting parameters = %v, want %v", got, tt.wantParams)
			}
		})
	}
}

func TestDetectConflicts_Symmetric(t *testing.T) {
	t.Parallel()

	a := Descriptor{ParameterName: "guid", InjectedType: tGuid, DeclaredType: tString}
	b := Descriptor{ParameterName: "guid", DeclaredType: tString}
	c := Descriptor{ParameterName: "guid", InjectedType: tString, DeclaredType: tString}

	orders := [][]Descriptor{
		{a, b, c},
		{c, b, a},
		{b, a, c},
		{b, c, a},
	}

	decl := annotatedDecl("Test")
	var want []string
	for i, order := range orders {
		var conflict *ConflictError
		if !errors.As(DetectConflicts(decl, order), &conflict) {
			t.Fatalf("order %d: no conflict reported", i)
		}
		got := conflict.Conflicts[0].Types
		if want == nil {
			want = got
			continue
		}
		if !slices.Equal(got, want) {
			t.Errorf("order %d: types = %v, want %v", i, got, want)
		}
	}
}

func TestDetectConflicts_Fragments(t *testing.T) {
	t.Parallel()

	decl := annotatedDecl("Test", withOverride(readonly("_i", tString), Inject{ParameterName: "guid", InjectedType: tGuid}))
	decl.Fragments = append(decl.Fragments, Fragment{
		Location: "Test.cs:11",
		Members:  []Member{readonly("_guid", tString)},
	})

	err := DetectConflicts(decl, CollectMembers(decl, DefaultOptions()))

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("DetectConflicts() error = %v, want *ConflictError", err)
	}
	if want := []string{"Test.cs:1", "Test.cs:11"}; !slices.Equal(conflict.Fragments, want) {
		t.Errorf("fragments = %v, want %v", conflict.Fragments, want)
	}
	if conflict.Type != "Test.Test" {
		t.Errorf("type = %q, want Test.Test", conflict.Type)
	}
	if want := "Test.Test: mismatching types for parameter guid (System.Guid vs string)"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
