// Package display provides output formatting for acactl.
//
// Every command renders its result as a table (default), JSON or YAML
// according to --output. Tables go through text/tabwriter. JSON and YAML
// share the same field names: YAML is produced from the JSON encoding so the
// wire names of the document API are kept.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/dashanan13/AzureContainerOptionDemo/cmd/acactl/client"
	"github.com/dashanan13/AzureContainerOptionDemo/cmd/acactl/config"
	"github.com/dashanan13/AzureContainerOptionDemo/cmd/acactl/utils"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/deploy"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/docapi/handlers"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/logging"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/names"
)

// Out is where all command output is written.
var Out io.Writer = os.Stdout

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#42E7FF"))

func title(s string) {
	fmt.Fprintln(Out, titleStyle.Render(s))
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(Out, 0, 0, 2, ' ', 0)
}

// structured writes v as JSON or YAML when that output was requested and
// reports whether it did.
func structured(v any) bool {
	switch config.Global.Output {
	case "json":
		encoder := json.NewEncoder(Out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(v); err != nil {
			logging.Error("Failed to encode JSON: %v", err)
			fmt.Fprintln(Out, "Error encoding JSON output")
		}
		return true
	case "yaml":
		data, err := ToYAML(v)
		if err != nil {
			logging.Error("Failed to encode YAML: %v", err)
			fmt.Fprintln(Out, "Error encoding YAML output")
			return true
		}
		Out.Write(data)
		return true
	}
	return false
}

// ToYAML encodes v as block-style YAML using its JSON field names.
func ToYAML(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	plainStyle(&node)
	return yaml.Marshal(&node)
}

// plainStyle drops the flow and quoting styles the JSON text was parsed
// with; the encoder re-quotes scalars that need it.
func plainStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		plainStyle(c)
	}
}

// DisplayNames shows the derived name set.
func DisplayNames(set names.NameSet, image, envFile string, saved bool) {
	out := struct {
		names.NameSet
		Image string `json:"image"`
	}{set, image}
	if structured(out) {
		return
	}

	w := newTable()
	fmt.Fprintln(w, "RESOURCE\tNAME")
	fmt.Fprintf(w, "Name suffix\t%s\n", set.Suffix)
	fmt.Fprintf(w, "Resource group\t%s\n", set.ResourceGroup)
	fmt.Fprintf(w, "Container registry\t%s\n", set.Registry)
	fmt.Fprintf(w, "Container Apps environment\t%s\n", set.Environment)
	fmt.Fprintf(w, "Container app\t%s\n", set.ContainerApp)
	fmt.Fprintf(w, "Container instance\t%s\n", set.ContainerInstance)
	fmt.Fprintf(w, "Image\t%s\n", image)
	w.Flush()

	if saved {
		fmt.Fprintf(Out, "\nSaved to %s\n", envFile)
	}
}

// DisplayResults shows what each deployment step did.
func DisplayResults(results []deploy.Result) {
	if structured(results) {
		return
	}
	if len(results) == 0 {
		fmt.Fprintln(Out, "No steps ran")
		return
	}

	w := newTable()
	defer w.Flush()

	if config.Global.Verbose {
		fmt.Fprintln(w, "STEP\tRESOURCE\tOUTCOME\tDURATION\tDETAIL")
	} else {
		fmt.Fprintln(w, "STEP\tRESOURCE\tOUTCOME\tDETAIL")
	}
	for _, r := range results {
		if config.Global.Verbose {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				r.Step, r.Resource, r.Outcome, utils.FormatDuration(r.Duration), r.Detail)
		} else {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Step, r.Resource, r.Outcome, r.Detail)
		}
	}
}

// DisplayStatus shows the existence report for every resource.
func DisplayStatus(statuses []deploy.ResourceStatus) {
	if structured(statuses) {
		return
	}

	w := newTable()
	defer w.Flush()

	fmt.Fprintln(w, "KIND\tNAME\tEXISTS\tSTATE\tENDPOINT")
	for _, s := range statuses {
		state := s.State
		if state == "" {
			state = "-"
		}
		endpoint := s.Endpoint
		if endpoint == "" {
			endpoint = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.Kind, s.Name, utils.YesNo(s.Exists), state, endpoint)
	}
}

// DisplayEnv shows the persisted env file.
func DisplayEnv(path string, values map[string]string) {
	if structured(values) {
		return
	}
	if len(values) == 0 {
		fmt.Fprintf(Out, "No values in %s (run 'acactl names --save')\n", path)
		return
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := newTable()
	defer w.Flush()
	fmt.Fprintln(w, "KEY\tVALUE")
	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%s\n", k, values[k])
	}
}

// DisplayHealth shows the probe result and, when available, the detailed
// health endpoint.
func DisplayHealth(baseURL, status string, detail *handlers.HealthResponse) {
	out := struct {
		URL    string                   `json:"url"`
		Status string                   `json:"status"`
		Detail *handlers.HealthResponse `json:"detail,omitempty"`
	}{baseURL, status, detail}
	if structured(out) {
		return
	}

	w := newTable()
	defer w.Flush()
	fmt.Fprintf(w, "URL:\t%s\n", baseURL)
	fmt.Fprintf(w, "Status:\t%s\n", status)
	if detail != nil {
		fmt.Fprintf(w, "Version:\t%s\n", detail.Version)
		fmt.Fprintf(w, "Uptime:\t%s\n", detail.Uptime)
		fmt.Fprintf(w, "Checked:\t%s\n", humanize.Time(detail.Timestamp))
	}
}

// DisplayInfo shows the service information endpoint.
func DisplayInfo(info *handlers.InfoResponse) {
	if structured(info) {
		return
	}

	title(info.Service)
	w := newTable()
	defer w.Flush()
	fmt.Fprintf(w, "Status:\t%s\n", info.Status)
	fmt.Fprintf(w, "Version:\t%s\n", info.Version)
	fmt.Fprintf(w, "Environment:\t%s\n", info.Environment)
	fmt.Fprintf(w, "Model:\t%s\n", info.Model.Name)
	fmt.Fprintf(w, "Embeddings key:\t%s\n", configured(info.Secrets.EmbeddingsAPIKeyConfigured))
	fmt.Fprintf(w, "Max document size:\t%d MB\n", info.Config.MaxDocumentSizeMB)
	fmt.Fprintf(w, "Processing timeout:\t%ds\n", info.Config.ProcessingTimeoutSeconds)
	fmt.Fprintf(w, "Log level:\t%s\n", info.Config.LogLevel)
	fmt.Fprintf(w, "Storage path:\t%s\n", info.Config.StoragePath)
}

func configured(b bool) string {
	if b {
		return "configured"
	}
	return "not configured"
}

// DisplayProcessResult shows a processing result.
func DisplayProcessResult(result *handlers.ProcessResult) {
	if structured(result) {
		return
	}

	title("Document " + result.DocumentID)
	w := newTable()
	fmt.Fprintf(w, "Filename:\t%s\n", result.Filename)
	fmt.Fprintf(w, "Processed:\t%s\n", result.ProcessedAt)
	fmt.Fprintf(w, "Environment:\t%s\n", result.Environment)
	fmt.Fprintf(w, "Model:\t%s\n", result.Model.Name)
	fmt.Fprintf(w, "Size:\t%s\n", humanize.Bytes(uint64(result.Statistics.SizeBytes)))
	fmt.Fprintf(w, "Characters:\t%s\n", humanize.Comma(int64(result.Statistics.CharacterCount)))
	fmt.Fprintf(w, "Words:\t%s\n", humanize.Comma(int64(result.Statistics.WordCount)))
	fmt.Fprintf(w, "Sentiment:\t%s (%.2f)\n", result.Analysis.Sentiment.Overall, result.Analysis.Sentiment.Confidence)
	fmt.Fprintf(w, "Key phrases:\t%s\n", strings.Join(result.Analysis.KeyPhrases, ", "))
	if result.Storage != nil {
		if result.Storage.Saved {
			fmt.Fprintf(w, "Stored:\t%s\n", result.Storage.Path)
		} else {
			fmt.Fprintf(w, "Stored:\tno (%s)\n", result.Storage.Reason)
		}
	}
	w.Flush()

	if len(result.Analysis.Entities) > 0 {
		fmt.Fprintln(Out)
		w = newTable()
		fmt.Fprintln(w, "ENTITY\tTYPE\tCONFIDENCE")
		for _, e := range result.Analysis.Entities {
			fmt.Fprintf(w, "%s\t%s\t%.2f\n", e.Text, e.Type, e.Confidence)
		}
		w.Flush()
	}
}

// DisplayDocuments shows the documents stored on the replica that answered.
func DisplayDocuments(list *client.DocumentList) {
	if structured(list) {
		return
	}
	if list.Error != "" {
		fmt.Fprintf(Out, "Storage error: %s\n", list.Error)
	}
	if len(list.Documents) == 0 {
		fmt.Fprintln(Out, "No documents found")
		return
	}

	w := newTable()
	defer w.Flush()
	fmt.Fprintln(w, "DOCUMENT ID\tSIZE\tCREATED")
	for _, d := range list.Documents {
		created := d.CreatedAt
		if t, err := time.Parse(time.RFC3339Nano, d.CreatedAt); err == nil {
			created = humanize.Time(t)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", d.DocumentID, humanize.Bytes(uint64(d.SizeBytes)), created)
	}
}
