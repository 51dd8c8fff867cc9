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

package tlitem

import "testing"

func TestPathStringJoinsSegmentsWithDots(t *testing.T) {
	p := Path{Segments: []string{"root", "Widget", "Resize"}}
	if got, want := p.String(), "root.Widget.Resize"; got != want {
		t.Errorf("Path.String()=%q, want %q", got, want)
	}
}

func TestPathStringEmptyForNoSegments(t *testing.T) {
	p := Path{}
	if got, want := p.String(), ""; got != want {
		t.Errorf("Path.String()=%q, want %q", got, want)
	}
}

func TestPathStringSingleSegment(t *testing.T) {
	p := Path{Segments: []string{"root"}}
	if got, want := p.String(), "root"; got != want {
		t.Errorf("Path.String()=%q, want %q", got, want)
	}
}
