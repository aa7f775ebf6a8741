package versioning

import (
	"sort"

	"github.com/jhoicas/gestion-pro/internal/domain/entity"
)

// ModuleInput fila de mapeo de módulo, venga del snapshot versionado o del mapeo legacy.
type ModuleInput struct {
	ModuleID       string
	Code           string
	Name           string
	IsRequired     bool
	DefaultEnabled bool
	DisplayOrder   int
}

// FeatureInput fila de mapeo de feature, venga del snapshot versionado o del mapeo legacy.
type FeatureInput struct {
	FeatureID      string
	Code           string
	Name           string
	ModuleCode     string
	IsRequired     bool
	DefaultEnabled bool
	DisplayOrder   int
}

// FeatureIDs devuelve los IDs del set de features del mapeo resuelto.
// Los overrides de tenant se consultan SOLO para este set: un override de una feature
// que la versión no expone nunca llega a la matriz (invariante de gating).
func FeatureIDs(feats []FeatureInput) []string {
	ids := make([]string, 0, len(feats))
	for _, f := range feats {
		ids = append(ids, f.FeatureID)
	}
	return ids
}

// ResolveModules calcula los módulos efectivos: required fuerza enabled=true,
// el resto usa su default. Ordena por DisplayOrder.
func ResolveModules(mods []ModuleInput) []entity.ResolvedModule {
	out := make([]entity.ResolvedModule, 0, len(mods))
	for _, m := range mods {
		enabled := m.DefaultEnabled
		if m.IsRequired {
			enabled = true
		}
		out = append(out, entity.ResolvedModule{
			ModuleID:     m.ModuleID,
			Code:         m.Code,
			Name:         m.Name,
			IsRequired:   m.IsRequired,
			Enabled:      enabled,
			DisplayOrder: m.DisplayOrder,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out
}

// ResolveFeatures calcula las features efectivas aplicando overrides de tenant.
// Reglas, en orden:
//  1. required  => enabled=true, source=business_default (el override se ignora).
//  2. override  => enabled=override, source=tenant_override.
//  3. si no     => enabled=default, source=business_default.
//
// overrides va indexado por FeatureID; solo debe contener features del set resuelto.
func ResolveFeatures(feats []FeatureInput, overrides map[string]bool) []entity.ResolvedFeature {
	out := make([]entity.ResolvedFeature, 0, len(feats))
	for _, f := range feats {
		enabled := f.DefaultEnabled
		source := entity.SourceBusinessDefault
		if f.IsRequired {
			enabled = true
		} else if ov, ok := overrides[f.FeatureID]; ok {
			enabled = ov
			source = entity.SourceTenantOverride
		}
		out = append(out, entity.ResolvedFeature{
			FeatureID:    f.FeatureID,
			Code:         f.Code,
			Name:         f.Name,
			ModuleCode:   f.ModuleCode,
			IsRequired:   f.IsRequired,
			Enabled:      enabled,
			Source:       source,
			DisplayOrder: f.DisplayOrder,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out
}

// ModulesFromVersion adapta filas de snapshot versionado al input del resolver.
func ModulesFromVersion(rows []entity.VersionModuleMapping) []ModuleInput {
	out := make([]ModuleInput, 0, len(rows))
	for _, r := range rows {
		out = append(out, ModuleInput{
			ModuleID:       r.ModuleID,
			Code:           r.ModuleCode,
			Name:           r.ModuleName,
			IsRequired:     r.IsRequired,
			DefaultEnabled: r.DefaultEnabled,
			DisplayOrder:   r.DisplayOrder,
		})
	}
	return out
}

// FeaturesFromVersion adapta filas de snapshot versionado al input del resolver.
func FeaturesFromVersion(rows []entity.VersionFeatureMapping) []FeatureInput {
	out := make([]FeatureInput, 0, len(rows))
	for _, r := range rows {
		out = append(out, FeatureInput{
			FeatureID:      r.FeatureID,
			Code:           r.FeatureCode,
			Name:           r.FeatureName,
			ModuleCode:     r.ModuleCode,
			IsRequired:     r.IsRequired,
			DefaultEnabled: r.DefaultEnabled,
			DisplayOrder:   r.DisplayOrder,
		})
	}
	return out
}

// ModulesFromLegacy adapta filas del mapeo pre-versionado al input del resolver.
func ModulesFromLegacy(rows []entity.BusinessModuleMap) []ModuleInput {
	out := make([]ModuleInput, 0, len(rows))
	for _, r := range rows {
		out = append(out, ModuleInput{
			ModuleID:       r.ModuleID,
			Code:           r.ModuleCode,
			Name:           r.ModuleName,
			IsRequired:     r.IsRequired,
			DefaultEnabled: r.DefaultEnabled,
			DisplayOrder:   r.DisplayOrder,
		})
	}
	return out
}

// FeaturesFromLegacy adapta filas del mapeo pre-versionado al input del resolver.
func FeaturesFromLegacy(rows []entity.BusinessFeatureMap) []FeatureInput {
	out := make([]FeatureInput, 0, len(rows))
	for _, r := range rows {
		out = append(out, FeatureInput{
			FeatureID:      r.FeatureID,
			Code:           r.FeatureCode,
			Name:           r.FeatureName,
			ModuleCode:     r.ModuleCode,
			IsRequired:     r.IsRequired,
			DefaultEnabled: r.DefaultEnabled,
			DisplayOrder:   r.DisplayOrder,
		})
	}
	return out
}
