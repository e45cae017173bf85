package session

import (
	"github.com/google/uuid"

	"github.com/rentcore/rentcore/internal/stats"
	"github.com/rentcore/rentcore/internal/types"
)

type CreateContractParams struct {
	PropertyId string
	RenterId   string
	TenantData types.TenantData
	Settings   types.ContractSettings
}

// CreateContract generates a draft contract, snapshotting tenant data and
// settings as supplied so later profile edits do not rewrite it.
func (c *Controller) CreateContract(params CreateContractParams) (types.Contract, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	u, err := c.requireSessionLocked()
	if err != nil {
		return types.Contract{}, err
	}

	i, ok := c.findPropertyLocked(params.PropertyId)
	if !ok {
		return types.Contract{}, ErrNotFound
	}
	prop := c.properties[i]

	if u.Role != types.RoleAdmin && prop.OwnerId != u.Id {
		return types.Contract{}, ErrForbidden
	}

	contract := types.Contract{
		Id:         "cont-" + uuid.NewString(),
		PropertyId: prop.Id,
		RenterId:   params.RenterId,
		OwnerId:    prop.OwnerId,
		TenantData: params.TenantData,
		Settings:   params.Settings,
		Status:     types.ContractDraft,
		CreatedAt:  c.now(),
	}

	c.contracts = append(c.contracts, contract)
	c.stats.Incr(stats.ContractsCreated)
	c.notifyLocked("Contrato gerado com sucesso.", types.ToastSuccess, "")

	return contract, wrapPersist(c.persistLocked())
}

// Contracts returns the contracts visible to the session user: admins see
// all, owners and renters only their own.
func (c *Controller) Contracts() ([]types.Contract, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	u, err := c.requireSessionLocked()
	if err != nil {
		return nil, err
	}

	var out []types.Contract
	for _, contract := range c.contracts {
		if u.Role == types.RoleAdmin || contract.OwnerId == u.Id || contract.RenterId == u.Id {
			out = append(out, contract)
		}
	}
	return out, nil
}
