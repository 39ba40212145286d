package scope

// ClientView is a read-only projection of a client and its contracts.
type ClientView struct {
	ClientState
	Contracts []ContractView `json:"contracts"`
}

// ContractView is a read-only projection of a contract and its deliverables.
type ContractView struct {
	ContractState
	Deliverables []DeliverableView `json:"deliverables"`
}

// DeliverableView is a read-only projection of a deliverable.
type DeliverableView struct {
	DeliverableState
}

// View projects the client with its contracts and their deliverables.
func (c *Client) View() ClientView {
	contracts := make([]ContractView, 0, len(c.contracts))
	for _, contract := range c.contracts {
		contracts = append(contracts, contract.View())
	}
	return ClientView{ClientState: c.State(), Contracts: contracts}
}

// View projects the contract with its deliverables.
func (c *Contract) View() ContractView {
	deliverables := make([]DeliverableView, 0, len(c.deliverables))
	for _, d := range c.deliverables {
		deliverables = append(deliverables, d.View())
	}
	return ContractView{ContractState: c.State(), Deliverables: deliverables}
}

// View projects the deliverable.
func (d *Deliverable) View() DeliverableView {
	return DeliverableView{DeliverableState: d.State()}
}
