package visualizer

import (
	"bytes"
	"encoding/json"
	"html/template"
	"os"
	"path/filepath"

	"github.com/chigwell/graph-ui/pkg/graph"
	"github.com/pkg/errors"
)

// The HTML template for the D3.js force layout
const d3Template = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Relationship Graph</title>
    <script src="https://d3js.org/d3.v7.min.js"></script>
    <style>
        body {
            margin: 0;
            font-family: Arial, sans-serif;
        }
        #graph {
            width: 100%;
            height: 100vh;
            background-color: white;
        }
        .node {
            stroke: #fff;
            stroke-width: 1.5px;
        }
        .link {
            stroke-opacity: 0.6;
        }
        .node-label, .link-label {
            font-size: 10px;
            pointer-events: none;
        }
        .link-label {
            fill: #666;
        }
        .controls {
            position: absolute;
            top: 10px;
            left: 10px;
            background-color: rgba(255,255,255,0.8);
            padding: 10px;
            border-radius: 5px;
            box-shadow: 0 0 10px rgba(0,0,0,0.1);
        }
    </style>
</head>
<body>
    <div id="graph"></div>
    <div class="controls">
        <h3>{{.Title}}</h3>
        <p>Nodes: {{.NodeCount}}, Edges: {{.EdgeCount}}</p>
        <label><input type="checkbox" id="show-edge-labels" checked> Show relationships</label>
    </div>

    <script>
        const graphData = {{.GraphData}};
        const colors = ['#FF5733', '#33FF57', '#3357FF', '#F1C40F', '#8E44AD', '#E74C3C', '#3498DB'];
        const pick = () => colors[Math.floor(Math.random() * colors.length)];

        const simulation = d3.forceSimulation(graphData.nodes)
            .force("link", d3.forceLink(graphData.edges).id(d => d.id).distance(120))
            .force("charge", d3.forceManyBody().strength(-300))
            .force("center", d3.forceCenter(window.innerWidth / 2, window.innerHeight / 2));

        const svg = d3.select("#graph")
            .append("svg")
            .attr("width", "100%")
            .attr("height", "100%")
            .call(d3.zoom().on("zoom", (event) => {
                g.attr("transform", event.transform);
            }));

        const g = svg.append("g");

        const link = g.append("g")
            .selectAll("line")
            .data(graphData.edges)
            .enter()
            .append("line")
            .attr("class", "link")
            .attr("stroke", () => pick())
            .attr("stroke-width", () => 1 + 2 * Math.random());

        const linkLabel = g.append("g")
            .selectAll("text")
            .data(graphData.edges)
            .enter()
            .append("text")
            .attr("class", "link-label")
            .text(d => d.label);

        const node = g.append("g")
            .selectAll("circle")
            .data(graphData.nodes)
            .enter()
            .append("circle")
            .attr("class", "node")
            .attr("r", 8)
            .attr("fill", () => pick())
            .call(d3.drag()
                .on("start", dragstarted)
                .on("drag", dragged)
                .on("end", dragended));

        const label = g.append("g")
            .selectAll("text")
            .data(graphData.nodes)
            .enter()
            .append("text")
            .attr("class", "node-label")
            .attr("dx", 12)
            .attr("dy", ".35em")
            .text(d => d.label);

        node.append("title").text(d => d.label);
        link.append("title").text(d => d.source.id + " " + d.label + " " + d.target.id);

        simulation.on("tick", () => {
            link
                .attr("x1", d => d.source.x)
                .attr("y1", d => d.source.y)
                .attr("x2", d => d.target.x)
                .attr("y2", d => d.target.y);

            linkLabel
                .attr("x", d => (d.source.x + d.target.x) / 2)
                .attr("y", d => (d.source.y + d.target.y) / 2);

            node
                .attr("cx", d => d.x)
                .attr("cy", d => d.y);

            label
                .attr("x", d => d.x)
                .attr("y", d => d.y);
        });

        d3.select("#show-edge-labels").on("change", function() {
            linkLabel.style("visibility", this.checked ? "visible" : "hidden");
        });

        function dragstarted(event, d) {
            if (!event.active) simulation.alphaTarget(0.3).restart();
            d.fx = d.x;
            d.fy = d.y;
        }

        function dragged(event, d) {
            d.fx = event.x;
            d.fy = event.y;
        }

        function dragended(event, d) {
            if (!event.active) simulation.alphaTarget(0);
            d.fx = null;
            d.fy = null;
        }
    </script>
</body>
</html>
`

var d3Tmpl = template.Must(template.New("d3").Parse(d3Template))

// D3Visualizer renders a graph projection as a standalone HTML page.
type D3Visualizer struct {
	outputPath string
	title      string
}

// NewD3Visualizer creates a visualizer writing to outputPath.
func NewD3Visualizer(outputPath string) *D3Visualizer {
	return &D3Visualizer{
		outputPath: outputPath,
		title:      "Relationship Graph",
	}
}

// Render writes the page for p into buf.
func (v *D3Visualizer) Render(buf *bytes.Buffer, p graph.Projection) error {
	graphData, err := json.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "encoding projection")
	}

	data := struct {
		Title     string
		GraphData template.JS
		NodeCount int
		EdgeCount int
	}{
		Title:     v.title,
		GraphData: template.JS(graphData),
		NodeCount: len(p.Nodes),
		EdgeCount: len(p.Edges),
	}

	return d3Tmpl.Execute(buf, data)
}

// Visualize renders p and writes it to the configured output path.
func (v *D3Visualizer) Visualize(p graph.Projection) error {
	dir := filepath.Dir(v.outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := v.Render(&buf, p); err != nil {
		return err
	}

	return os.WriteFile(v.outputPath, buf.Bytes(), 0644)
}
