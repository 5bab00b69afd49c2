package scene

import (
	"fmt"
	"os"

	"github.com/seqsense/pcgol/pc"

	"github.com/ECOLE-ITN/pcaeviz/pkg/vis"
)

// PCDName returns the reconstruction snapshot file name for shape i.
func PCDName(shape int) string {
	return fmt.Sprintf("PC_%d_reconstruction.pcd", shape)
}

// WritePCD stores the cloud as a binary PCD file at path, so the
// reconstructions can be inspected in standard point-cloud tooling.
func WritePCD(path string, cloud vis.Cloud) error {
	pp := &pc.PointCloud{
		PointCloudHeader: pc.PointCloudHeader{
			Version: 0.7,
			Fields:  []string{"x", "y", "z"},
			Size:    []int{4, 4, 4},
			Type:    []string{"F", "F", "F"},
			Count:   []int{1, 1, 1},
			Width:   len(cloud),
			Height:  1,
		},
		Points: len(cloud),
	}
	pp.Data = make([]byte, len(cloud)*pp.Stride())

	it, err := pp.Vec3Iterator()
	if err != nil {
		return fmt.Errorf("pcd iterator: %w", err)
	}
	for _, p := range cloud {
		it.SetVec3(p)
		it.Incr()
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create pcd %s: %w", path, err)
	}
	defer f.Close()
	if err := pc.Marshal(pp, f); err != nil {
		return fmt.Errorf("marshal pcd %s: %w", path, err)
	}
	return nil
}
