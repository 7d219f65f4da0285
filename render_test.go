// Copyright 2026 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arc

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

var posts = Sequence{
	Mapping{"title": StringValue("A"), "type": StringValue("post")},
	Mapping{"title": StringValue("B"), "type": StringValue("page"), "draft": StringValue("true")},
}

var rendererTests = []struct {
	src   string
	vars  Mapping
	store MapStore
	out   string
}{
	// Text without directives.
	{"", nil, nil, ""},
	{"plain text", nil, nil, "plain text"},
	{"a { b } c {a} %} {% %", Mapping{"a": StringValue("x")}, nil, "a { b } c {a} %} {% %"},

	// Variables.
	{"Hello {{name}}!", Mapping{"name": StringValue("World")}, nil, "Hello World!"},
	{"Hello {{ name }}!", Mapping{"name": StringValue("World")}, nil, "Hello World!"},
	{"{{\tname\n}}", Mapping{"name": StringValue("World")}, nil, "World"},
	{"{{a}}{{a}}", Mapping{"a": StringValue("x")}, nil, "xx"},
	{"{{missing}}", Mapping{}, nil, "{{missing}}"},
	{"{{ missing }}", nil, nil, "{{ missing }}"},
	{"{{name}}", Mapping{"name": Absent{}}, nil, ""},
	{"{{name}}", Mapping{"name": nil}, nil, ""},
	{"[{{m}}]", Mapping{"m": Mapping{}}, nil, "[]"},
	{"[{{s}}]", Mapping{"s": posts}, nil, "[]"},
	{"{{ a b }}", Mapping{"a": StringValue("x")}, nil, "{{ a b }}"},
	{"{{}}", nil, nil, "{{}}"},
	{"{{a.b.c}}", Mapping{"a": Mapping{"b": Mapping{"c": StringValue("42")}}}, nil, "42"},
	{"{{ a.b.c }}", Mapping{"a": Mapping{"b": Mapping{"c": StringValue("42")}}}, nil, "42"},
	{"{{a.b.c}}", Mapping{"a": Mapping{}}, nil, ""},
	{"{{a.b.c}}", Mapping{"a": Mapping{"b": StringValue("x")}}, nil, ""},
	{"{{a.b}}", nil, nil, ""},
	{"{{x}}", Mapping{"x": StringValue("{{y}}"), "y": StringValue("z")}, nil, "{{y}}"},
	{"{{og.image}}", Mapping{"og.image": StringValue("x.png")}, nil, "x.png"},
	{"{{og.image}}", Mapping{"og.image": StringValue("x.png"), "og": Mapping{"image": StringValue("y.png")}}, nil, "x.png"},
	{"a {{ b {{ name }}!", Mapping{"name": StringValue("World")}, nil, "a {{ b World!"},
	{"{{ x {% if a %}Y{% endif %}}}", Mapping{"a": StringValue("1")}, nil, "{{ x Y}}"},
	{"{{ x {% if a %}Y{% endif %}}}", nil, nil, "{{ x }}"},
	{"{% x {% if a %}Y{% endif %}", Mapping{"a": StringValue("1")}, nil, "{% x Y"},

	// Conditions.
	{`{% if type == "post" %}POST{% endif %}`, Mapping{"type": StringValue("post")}, nil, "POST"},
	{`{% if type == "post" %}POST{% endif %}`, Mapping{"type": StringValue("page")}, nil, ""},
	{`{% if type == 'post' %}POST{% endif %}`, Mapping{"type": StringValue("post")}, nil, "POST"},
	{`{% if type == post %}POST{% endif %}`, Mapping{"type": StringValue("post")}, nil, "POST"},
	{`{% if type == "post" %}POST{% endif %}`, nil, nil, ""},
	{`{% if x == "" %}E{% endif %}`, nil, nil, ""},
	{`{% if x == "" %}E{% endif %}`, Mapping{"x": StringValue("")}, nil, "E"},
	{`{% if m == "" %}E{% endif %}`, Mapping{"m": Mapping{}}, nil, ""},
	{`{% if a.b == "c" %}C{% endif %}`, Mapping{"a": Mapping{"b": StringValue("c")}}, nil, "C"},
	{"{% if a %}A{% endif %}", Mapping{"a": StringValue("1")}, nil, "A"},
	{"{% if a %}A{% endif %}", Mapping{"a": StringValue("")}, nil, ""},
	{"{% if a %}A{% endif %}", Mapping{"a": Absent{}}, nil, ""},
	{"{% if a %}A{% endif %}", nil, nil, ""},
	{"{% if a %}A{% endif %}", Mapping{"a": Mapping{}}, nil, "A"},
	{"{% if a %}A{% endif %}", Mapping{"a": Sequence{}}, nil, "A"},
	{"{% if a %}A{% endif %}B", Mapping{"a": StringValue("")}, nil, "B"},
	{"{% if a %}A", Mapping{"a": StringValue("")}, nil, ""},
	{"{% if a %}A", Mapping{"a": StringValue("1")}, nil, "A"},
	{"{% if a %}{% if b %}x{% endif %}y{% endif %}", Mapping{"a": StringValue("1")}, nil, "y"},
	{"{% if a %}{% if b %}x{% endif %}y{% endif %}", Mapping{"b": StringValue("1")}, nil, ""},
	{"{% if a %}{% if b %}x{% endif %}y{% endif %}", Mapping{"a": StringValue("1"), "b": StringValue("1")}, nil, "xy"},
	{"x{% endif %}", nil, nil, "x{% endif %}"},
	{"{% if a %}A{% else %}B{% endif %}", Mapping{"a": StringValue("1")}, nil, "A{% else %}B"},
	{`{% if og.type == "article" %}A{% endif %}`, Mapping{"og.type": StringValue("article")}, nil, "A"},

	// Loops.
	{"{% for p in posts %}{{p.title}}\n{% endfor %}", Mapping{"posts": posts}, nil, "A\nB\n"},
	{"{% for p in posts %}{{ p.title }}{% endfor %}", Mapping{"posts": posts}, nil, "AB"},
	{"{% for p in posts %}{{p.title}}\n{% endfor %}", Mapping{"posts": StringValue("x")}, nil, ""},
	{"{% for p in posts %}{{p.title}}\n{% endfor %}", Mapping{"posts": Mapping{}}, nil, ""},
	{"<{% for p in posts %}{{p.title}}{% endfor %}>", nil, nil, "<>"},
	{"{% for p in posts %}{{p.missing}}{% endfor %}", Mapping{"posts": posts}, nil, ""},
	{"{% for p in posts %}{% if p.type == \"post\" %}{{p.title}}{% endif %}{% endfor %}", Mapping{"posts": posts}, nil, "A"},
	{"{% for p in posts %}{% if p.draft %}D{% endif %}{{p.title}}{% endfor %}", Mapping{"posts": posts}, nil, "ADB"},
	{"{% for p in posts %}{{p.title}}{% endfor %}{% for q in posts %}{{q.type}}{% endfor %}", Mapping{"posts": posts}, nil, "ABpostpage"},
	{"{% for p in posts %}{{p.title}}{% endfor %}[{{p.title}}]{{p}}", Mapping{"posts": posts}, nil, "AB[]{{p}}"},
	{"{% for p in posts %}{{title}}{% endfor %}", Mapping{"posts": posts, "title": StringValue("T")}, nil, "TT"},
	{"{% for title in posts %}{{title.type}}{% endfor %}{{title}}", Mapping{"posts": posts, "title": StringValue("T")}, nil, "postpageT"},
	{"{% for p in site.posts %}{{p.title}}{% endfor %}", Mapping{"site": Mapping{"posts": posts}}, nil, "AB"},
	{"{% for p in posts %}[{{p.a.b}}]{% endfor %}", Mapping{"posts": Sequence{Mapping{"a": Mapping{"b": StringValue("x")}}}}, nil, "[]"},
	{"{% for p in posts %}{% if p.a.b == \"x\" %}X{% endif %}{% endfor %}", Mapping{"posts": Sequence{Mapping{"a": Mapping{"b": StringValue("x")}}}}, nil, "X"},
	{"{% for p in posts %}{{p.title}}", Mapping{"posts": posts}, nil, "{% for p in posts %}"},
	{"{% for p in posts %}[{% if p.draft %}D{% endfor %}", Mapping{"posts": posts}, nil, "[[D"},
	{"{% for p in posts %}[{% if p.draft %}D{% if p.x %}X{% endfor %}]", Mapping{"posts": posts}, nil, "[[D]"},
	{"{% if a %}{% for p in posts %}{{p.title}}{% endif %}", Mapping{"a": StringValue("1"), "posts": posts}, nil, "{% for p in posts %}"},
	{"{% if a %}{% for p in posts %}{{p.title}}{% endif %}!", Mapping{"posts": posts}, nil, "!"},
	{"{% for p in posts %}{{p}}{% endfor %}", Mapping{"posts": posts}, nil, "{{p}}{{p}}"},
	{"{% for p in posts %}{{ p }}{% endfor %}", Mapping{"posts": Sequence{StringValue("x")}}, nil, "{{ p }}"},
	{"{% for p in posts %}{{p.title}}{% endfor %}", Mapping{"posts": posts, "p.title": StringValue("G")}, nil, "AB"},
	{"{% for a in as %}{% for b in a.bs %}{{a.n}}{{b.n}} {% endfor %}{% endfor %}", Mapping{"as": Sequence{
		Mapping{"n": StringValue("1"), "bs": Sequence{Mapping{"n": StringValue("a")}, Mapping{"n": StringValue("b")}}},
		Mapping{"n": StringValue("2"), "bs": Sequence{Mapping{"n": StringValue("c")}}},
	}}, nil, "1a 1b 2c "},
	{"x{% endfor %}", nil, nil, "x{% endfor %}"},

	// Includes.
	{`{% include "header" %}`, Mapping{"x": StringValue("1")}, MapStore{"header": "H{{x}}"}, "H1"},
	{`<{% include "a" %}>`, nil, MapStore{"a": `A{% include "b" %}`, "b": "B"}, "<AB>"},
	{`{% for p in posts %}{% include "item" %}{% endfor %}`, Mapping{"posts": posts}, MapStore{"item": "<li>{{p.title}}</li>"}, "<li>A</li><li>B</li>"},
	{`{% if a %}{% include "h" %}{% endif %}`, nil, MapStore{"h": "H"}, ""},
	{`{% for p in posts %}{{p.title}}{% include "end" %}`, Mapping{"posts": posts}, MapStore{"end": "{% endfor %}"}, "AB"},
	{`{% for p in posts %}{% include "end" %}`, Mapping{"posts": posts}, MapStore{"end": "{% endfor %}"}, ""},
	{`{% include "open" %}SECRET{% include "close" %}`, Mapping{"show": StringValue("")}, MapStore{"open": "{% if show %}", "close": "{% endif %}"}, ""},
	{`{% include "open" %}SECRET{% include "close" %}`, Mapping{"show": StringValue("1")}, MapStore{"open": "{% if show %}", "close": "{% endif %}"}, "SECRET"},
	{`{% include "layout" %}<main>{{content}}</main>{% include "end" %}`, Mapping{"content": StringValue("C")}, MapStore{"layout": "<body>{% if content %}", "end": "{% endif %}</body>"}, "<body><main>C</main></body>"},
	{`{% include "empty" %}x`, nil, MapStore{"empty": ""}, "x"},
}

func TestRenderer(t *testing.T) {
	for _, test := range rendererTests {
		var store Store
		if test.store != nil {
			store = test.store
		}
		out, err := Render(test.src, test.vars, store)
		if err != nil {
			t.Errorf("source: %q, unexpected error: %s", test.src, err)
			continue
		}
		if out != test.out {
			t.Errorf("source: %q, expecting %q, got %q", test.src, test.out, out)
		}
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	for _, test := range rendererTests {
		if strings.Contains(test.out, "{{") || strings.Contains(test.out, "{%") {
			continue
		}
		out, err := Render(test.out, test.vars, test.store)
		if err != nil {
			t.Errorf("source: %q, unexpected error: %s", test.out, err)
			continue
		}
		if out != test.out {
			t.Errorf("source: %q, expecting %q, got %q", test.out, test.out, out)
		}
	}
}

func TestRenderMissingInclude(t *testing.T) {
	out, err := Render("a\n{% include \"footer\" %}", nil, MapStore{})
	if err == nil {
		t.Fatal("expecting error, got no error")
	}
	if out != "" {
		t.Fatalf("expecting no output, got %q", out)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expecting error to be fs.ErrNotExist, got %v", err)
	}
	var ie *IncludeError
	if !errors.As(err, &ie) {
		t.Fatalf("expecting *IncludeError value, got %T value", err)
	}
	if ie.Name != "footer" || ie.Pos.Line != 2 || ie.Pos.Column != 1 {
		t.Fatalf("unexpected include error %q", ie)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expecting *NotFoundError value in the chain")
	}
	if nf.Name != "footer" {
		t.Fatalf("expecting name %q, got %q", "footer", nf.Name)
	}
	const msg = `2:1: include "footer": template "footer" does not exist`
	if err.Error() != msg {
		t.Fatalf("expecting error message %q, got %q", msg, err.Error())
	}
}

func TestRenderCyclicInclude(t *testing.T) {
	_, err := Render(`{% include "a" %}`, nil, MapStore{"a": `{% include "b" %}`, "b": `{% include "a" %}`})
	var e *RecursionLimitError
	if !errors.As(err, &e) {
		t.Fatalf("expecting *RecursionLimitError value, got %T value", err)
	}
	if e.Limit != DefaultMaxIncludeDepth {
		t.Fatalf("expecting limit %d, got %d", DefaultMaxIncludeDepth, e.Limit)
	}
}
