package hcl_adapter

import (
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/packer/internal/config"
	"github.com/zclconf/go-cty/cty"
)

// WriteDefault writes a commented .packerrc.hcl describing cfg. The caller
// is expected to pass a defaulted configuration.
func WriteDefault(w io.Writer, cfg *config.BuildConfig) error {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	comment(body, "packer build configuration")
	body.SetAttributeValue("entry", cty.StringVal(cfg.Entry))
	body.SetAttributeValue("source", cty.StringVal(cfg.Source))
	body.SetAttributeValue("dist", cty.StringVal(cfg.Dist))
	body.SetAttributeValue("tmp", cty.StringVal(cfg.Tmp))
	body.SetAttributeValue("copy", stringList(cfg.Copy))
	body.AppendNewline()

	compiler := body.AppendNewBlock("compiler", nil).Body()
	compiler.SetAttributeValue("buildMode", cty.StringVal(cfg.Compiler.BuildMode))
	compiler.SetAttributeValue("scriptPreprocessor", cty.StringVal(cfg.Compiler.ScriptPreprocessor))
	compiler.SetAttributeValue("stylePreprocessor", cty.StringVal(cfg.Compiler.StylePreprocessor))
	compiler.SetAttributeValue("concurrentBuild", cty.BoolVal(cfg.Compiler.ConcurrentBuild))
	body.AppendNewline()

	comment(body, "dependencyMapMode: cross-map-peer-dependency | cross-map-dependency | map-dependency | map-peer-dependency | all | none")
	output := body.AppendNewBlock("output", nil).Body()
	output.SetAttributeValue("format", cty.StringVal(cfg.Output.Format))
	output.SetAttributeValue("namespace", cty.StringVal(cfg.Output.Namespace))
	output.SetAttributeValue("es5", cty.BoolVal(cfg.Output.ES5))
	output.SetAttributeValue("esnext", cty.BoolVal(cfg.Output.ESNext))
	output.SetAttributeValue("dependencyMapMode", cty.StringVal(cfg.Output.DependencyMapMode))
	body.AppendNewline()

	bundle := body.AppendNewBlock("bundle", nil).Body()
	bundle.SetAttributeValue("externals", stringList(cfg.Bundle.Externals))
	bundle.SetAttributeValue("mapExternals", cty.BoolVal(cfg.Bundle.MapsExternals()))
	body.AppendNewline()

	test := body.AppendNewBlock("test", nil).Body()
	test.SetAttributeValue("framework", cty.StringVal(cfg.Test.Framework))
	test.SetAttributeValue("browsers", stringList(cfg.Test.Browsers))
	body.AppendNewline()

	watch := body.AppendNewBlock("watch", nil).Body()
	watch.SetAttributeValue("port", cty.NumberIntVal(int64(cfg.Watch.Port)))
	watch.SetAttributeValue("open", cty.BoolVal(cfg.Watch.OpenBrowser()))
	watch.SetAttributeValue("demoDir", cty.StringVal(cfg.Watch.DemoDir))

	for _, p := range cfg.Plugins {
		body.AppendNewline()
		plugin := body.AppendNewBlock("plugins", nil).Body()
		plugin.SetAttributeValue("module", cty.StringVal(p.Module))
		plugin.SetAttributeValue("import", cty.StringVal(p.Import))
		if len(p.Phases) > 0 {
			plugin.SetAttributeValue("phases", stringList(p.Phases))
		}
		if p.Options != nil {
			options, err := ToCtyValue(p.Options)
			if err != nil {
				return fmt.Errorf("options of plugin %q: %w", p.Module, err)
			}
			plugin.SetAttributeValue("options", options)
		}
	}

	_, err := w.Write(hclwrite.Format(f.Bytes()))
	return err
}

func comment(body *hclwrite.Body, text string) {
	body.AppendUnstructuredTokens(hclwrite.Tokens{
		{Type: hclsyntax.TokenComment, Bytes: []byte("# " + text + "\n")},
	})
}

func stringList(items []string) cty.Value {
	if len(items) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(items))
	for i, item := range items {
		vals[i] = cty.StringVal(item)
	}
	return cty.ListVal(vals)
}
