package api

import (
	"github.com/preesm/spider2-sub000/internal/diag"
	"github.com/preesm/spider2-sub000/internal/platform"
)

// CreatePlatform mirrors spider::api::createPlatform(clusterCount,
// peCount). The counts are accepted for call-shape parity with spec §6
// only; Go slices need no up-front capacity reservation
// (platform.NewPlatform's own doc comment).
func CreatePlatform(_, _ int) *platform.Platform {
	return platform.NewPlatform()
}

// CreateCluster mirrors spider::api::createCluster(peCount,
// memoryInterface).
func CreateCluster(p *platform.Platform, _ int, mem *platform.MemoryInterface) (*platform.Cluster, diag.Diagnostics) {
	if p == nil {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Construction, "", "nil platform", "createCluster requires a platform built by createPlatform")}
	}
	if mem == nil {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Construction, "", "nil memory interface", "")}
	}
	return p.AddCluster(mem), nil
}

// CreateProcessingElement mirrors
// spider::api::createProcessingElement(hwType, hwId, cluster, name,
// role, affinity).
func CreateProcessingElement(hwType, hwID int, cluster *platform.Cluster, name string, role platform.Role, affinity int) (*platform.PE, diag.Diagnostics) {
	if cluster == nil {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Construction, name, "nil cluster", "createProcessingElement requires a cluster built by createCluster")}
	}
	return cluster.AddPE(hwType, hwID, name, role, affinity)
}

// SetGlobalRuntimePE mirrors spider::api::setSpiderGRTPE(pe).
func SetGlobalRuntimePE(p *platform.Platform, pe *platform.PE) diag.Diagnostics {
	if p == nil {
		return diag.Diagnostics{diag.New(diag.Error, diag.Construction, "", "nil platform", "")}
	}
	return p.SetGRT(pe)
}
