// Copyright 2026 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package arc implements the template engine of the Arc static site
// generator.
//
// A template is a text with placeholders and statements:
//
//	{% include "header.html" %}
//	<h1>{{ title }}</h1>
//	{% if type == "post" %}<time>{{ formatted_date }}</time>{% endif %}
//	<ul>
//	{% for post in posts %}
//	  <li><a href="{{ post.url }}">{{ post.title }}</a></li>
//	{% endfor %}
//	</ul>
//	{{ content }}
//
// {{ name }} is replaced with the value of the variable name. If name is not
// bound, or it is bound to a loop element, the placeholder is left as is.
// {{ a.b }} is replaced with the value of the variable named "a.b", if it
// exists, otherwise with the value of the field b of the mapping a, or with
// an empty string if a or its field b do not exist.
//
// {% include "name" %} is replaced with the source of the named template,
// read from a Store, before the statements are parsed. So a statement opened
// in a template can be closed in the template that includes it. Included
// templates are expanded also in the statements whose condition is false,
// and a template that does not exist is an error.
//
// {% if path %} renders its body if the value of path is a non-empty string,
// a mapping or a sequence. {% if path == "value" %} renders its body if the
// value of path is the string "value". There is no else.
//
// {% for item in path %} renders its body once for each element of the
// sequence path, binding item to the element. If path is not a sequence,
// nothing is rendered.
//
// Statements can be nested. A statement that is not well formed, and an
// {% endif %} or {% endfor %} without the corresponding opening statement,
// is written as text. An {% endfor %} ends the ifs opened in the loop body
// and not yet closed. An {% if %} without {% endif %} extends to the end of
// the template, and a {% for %} without {% endfor %} is written as text.
//
// Templates are rendered by an Engine:
//
//	engine := arc.New(arc.DirStore("templates"), &arc.Options{
//		Globals: arc.Mapping{"site": arc.Strings(siteConfig)},
//	})
//	html, err := engine.Render(src, metadata, body)
package arc
