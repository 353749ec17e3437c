/*
Package domdbg implements helpers to debug a bound document.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>


*/
package domdbg

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
	"text/template"

	"github.com/npillmayer/fxlayout/dom"
	"github.com/npillmayer/fxlayout/dom/entity"
	"github.com/npillmayer/fxlayout/dom/style"
	"github.com/npillmayer/fxlayout/tree"
)

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname      string
	Namespaces    []style.Namespace
	NodeTmpl      *template.Template
	EdgeTmpl      *template.Template
	PropTableTmpl *template.Template
	PropEdgeTmpl  *template.Template
}

var defaultNamespaces = []style.Namespace{
	style.StyleNS,
	style.AttrNS,
	style.ClassNS,
}

// ToGraphViz outputs a diagram for the entity tree of a document. The diagram
// is in GraphViz (DOT) format. Clients have to provide the document, a Writer,
// and an optional list of namespaces of the live property sets to include.
//
// If the client does not provide a list of namespaces, all of them are drawn:
//
//     - style
//     - attr
//     - class
//
func ToGraphViz(doc *dom.Document, w io.Writer, namespaces []style.Namespace) error {
	tmpl, err := template.New("dom").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl = template.Must(template.New("entity").Parse(entityTmpl))
	gparams.EdgeTmpl = template.Must(template.New("edge").Parse(edgeTmpl))
	gparams.PropTableTmpl = template.Must(template.New("props").Funcs(
		template.FuncMap{
			"escape": htmlEscape,
		}).Parse(propTableTmpl))
	gparams.PropEdgeTmpl = template.Must(template.New("propedge").Parse(propEdgeTmpl))
	gparams.Namespaces = namespaces
	if namespaces == nil {
		gparams.Namespaces = defaultNamespaces
	}
	if err = tmpl.Execute(w, gparams); err != nil {
		return err
	}
	dict := make(map[*entity.Entity]string, 256)
	for _, e := range doc.Resolver().Entities() {
		if p := e.ParentEntity(); p == nil {
			if err := entities(e, w, dict, &gparams); err != nil {
				return err
			}
		}
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

// Dotty is a helper for testing. Given a document and a testing.T, it will
// create a Graphviz image of the entity tree and write it to a file in the
// current folder, choosing a unique file name.
// The image is in SVG format.
//
// If an error occurs, t.Error(…) will be set, causing the test to fail.
//
func Dotty(doc *dom.Document, t *testing.T) {
	tmpfile, err := os.CreateTemp(".", "entities.*.dot")
	if err != nil {
		t.Error(err)
		return
	}
	defer func() {
		tmpfile.Close()
		os.Remove(tmpfile.Name()) // clean up
	}()
	t.Logf("writing entity digraph to %s\n", tmpfile.Name())
	if err := ToGraphViz(doc, tmpfile, nil); err != nil {
		t.Error(err)
		return
	}
	outOption := fmt.Sprintf("-o%s.svg", tmpfile.Name())
	cmd := exec.Command("dot", "-Tsvg", outOption, tmpfile.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	t.Logf("writing entity tree image to %s.svg\n", tmpfile.Name())
	if err := cmd.Run(); err != nil {
		t.Error(err.Error())
	}
}

type node struct {
	E    *entity.Entity
	Name string
}

func entities(e *entity.Entity, w io.Writer, dict map[*entity.Entity]string, gparams *graphParamsType) error {
	return tree.TopDown(&e.Node, func(n *tree.Node[*entity.Entity], depth int) error {
		x := entity.Node(n)
		if err := entityNode(x, w, dict, gparams); err != nil {
			return err
		}
		if depth == 0 {
			return nil
		}
		p := x.ParentEntity()
		return gparams.EdgeTmpl.Execute(w, edge{node{p, dict[p]}, node{x, dict[x]}})
	})
}

func entityNode(e *entity.Entity, w io.Writer, dict map[*entity.Entity]string, gparams *graphParamsType) error {
	name := fmt.Sprintf("node%05d", len(dict)+1)
	dict[e] = name
	if err := gparams.NodeTmpl.Execute(w, &node{e, name}); err != nil {
		return err
	}
	for _, ns := range gparams.Namespaces {
		table := propTable{Node: name, Name: ns.String(), Properties: properties(e.Live(), ns)}
		if len(table.Properties) == 0 {
			continue
		}
		if err := gparams.PropTableTmpl.Execute(w, table); err != nil {
			return err
		}
		if err := gparams.PropEdgeTmpl.Execute(w, table); err != nil {
			return err
		}
	}
	return nil
}

func properties(ps *style.PropertySet, ns style.Namespace) []style.KeyValue {
	switch ns {
	case style.AttrNS:
		return ps.Attributes()
	case style.ClassNS:
		var kvs []style.KeyValue
		for _, c := range ps.Classes() {
			kvs = append(kvs, style.KeyValue{Key: "class", Value: style.Property(c)})
		}
		return kvs
	}
	return ps.Styles()
}

type edge struct {
	N1, N2 node
}

type propTable struct {
	Node       string
	Name       string
	Properties []style.KeyValue
}

func htmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const entityTmpl = `{{ .Name }}	[ label={{ printf "%q" .E.Name }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
`

const edgeTmpl = `{{ .N1.Name }} -> {{ .N2.Name }} [weight=1] ;
`

const propTableTmpl = `{{ .Node }}_{{ .Name }} [ style="filled" penwidth=1 fillcolor="ivory3" shape="Mrecord" fontsize=12
    label=<<table border="0" cellborder="0" cellpadding="2" cellspacing="0" bgcolor="ivory3">
      <tr><td bgcolor="azure4" align="center" colspan="2"><font color="white">{{ .Name }}</font></td></tr>
      {{ range .Properties }}
      <tr><td align="right">{{ escape .Key }}:</td><td>{{ .Value.String | escape }}</td></tr>
      {{ end }}
    </table>> ] ;
`

const propEdgeTmpl = `{{ .Node }} -> {{ .Node }}_{{ .Name }} [dir=none weight=1 style="dashed"] ;
`
