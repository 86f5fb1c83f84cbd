package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guttosm/epq-service/internal/domain/model"
	"github.com/guttosm/epq-service/internal/scenario"
	"github.com/guttosm/epq-service/internal/service"
)

type optimizeOptions struct {
	params       model.CostParameters
	scenarioPath string
	item         string
	format       string
}

func newOptimizeCmd() *cobra.Command {
	o := &optimizeOptions{}

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Optimise the lot size of a single product",
		Long: `Builds TC(Q) from the cost parameters, solves dTC/dQ = 0 exactly and
prints Q* and TC(Q*). With --scenario the parameters of one scenario item
are used as a base and any flag given explicitly overrides them.`,
		Example: `  epqctl optimize --demand 1000 --setup 50 --holding 2
  epqctl optimize --scenario plant.yaml --item metal --defect-rate 0.02`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&o.params.Demand, "demand", 0, "Annual demand D (units/year)")
	f.Float64Var(&o.params.ManufacturerSetupCost, "setup", 0, "Manufacturer setup cost Sm per batch")
	f.Float64Var(&o.params.SupplierSetupCost, "supplier-setup", 0, "Supplier setup cost Sv per batch")
	f.Float64Var(&o.params.HoldingCost, "holding", 0, "Holding cost h per unit per year")
	f.Float64Var(&o.params.DefectRate, "defect-rate", 0, "Defective fraction α in [0, 1)")
	f.Float64Var(&o.params.DefectPenalty, "defect-penalty", 0, "Penalty p per defective unit")
	f.Float64Var(&o.params.ProductionRate, "production-rate", 0, "Production rate P (units/year), 0 for instantaneous replenishment")
	f.StringVar(&o.scenarioPath, "scenario", "", "Scenario YAML providing base parameters")
	f.StringVar(&o.item, "item", "", "Scenario item to use (default: first item)")
	f.StringVarP(&o.format, "output", "o", formatText, "Output format (text, json)")
	return cmd
}

func (o *optimizeOptions) run(cmd *cobra.Command) error {
	if err := validateFormat(o.format); err != nil {
		return err
	}

	params := o.params
	if o.scenarioPath != "" {
		base, err := o.scenarioParameters()
		if err != nil {
			return err
		}
		params = mergeChanged(cmd, base, o.params)
	}

	result, err := service.NewOptimizerService().Optimize(params)
	if err != nil {
		return err
	}

	if o.format == formatJSON {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	return writeResult(cmd.OutOrStdout(), result)
}

func (o *optimizeOptions) scenarioParameters() (model.CostParameters, error) {
	sc, err := scenario.Load(o.scenarioPath)
	if err != nil {
		return model.CostParameters{}, err
	}
	if o.item == "" {
		return sc.Items[0].Parameters, nil
	}
	for _, it := range sc.Items {
		if it.Name == o.item {
			return it.Parameters, nil
		}
	}
	return model.CostParameters{}, fmt.Errorf("scenario %s has no item %q", o.scenarioPath, o.item)
}

// mergeChanged overlays the explicitly set flags onto base.
func mergeChanged(cmd *cobra.Command, base, flags model.CostParameters) model.CostParameters {
	f := cmd.Flags()
	overlay := []struct {
		name string
		dst  *float64
		src  float64
	}{
		{"demand", &base.Demand, flags.Demand},
		{"setup", &base.ManufacturerSetupCost, flags.ManufacturerSetupCost},
		{"supplier-setup", &base.SupplierSetupCost, flags.SupplierSetupCost},
		{"holding", &base.HoldingCost, flags.HoldingCost},
		{"defect-rate", &base.DefectRate, flags.DefectRate},
		{"defect-penalty", &base.DefectPenalty, flags.DefectPenalty},
		{"production-rate", &base.ProductionRate, flags.ProductionRate},
	}
	for _, o := range overlay {
		if f.Changed(o.name) {
			*o.dst = o.src
		}
	}
	return base
}
