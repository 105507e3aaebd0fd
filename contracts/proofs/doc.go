/*
Package proofs implements the AI report proofs contract.

The contract keeps a registry of AI generated reports stored in IPFS. The
contract owner registers a proof for each report: the time of registration,
the name of the AI provider and a link to the report built from the base
IPFS gateway link and the report hash. Anyone can read the proofs.

Only the owner can change the contract configuration, register proofs and
update the contract. The owner is the sender of the deploying transaction
and can hand the contract over to another account with UpdateConfig.

# Contract notifications

UpdateConfig notification. This notification is produced when the owner
changes the contract configuration. It carries the configuration saved.

	UpdateConfig:
	  - name: owner
	    type: Hash160
	  - name: baseIPFS
	    type: String

UpdateProof notification. This notification is produced when the owner
registers a proof of the report.

	UpdateProof:
	  - name: reportHash
	    type: String
	  - name: aiProvider
	    type: String
	  - name: reportLink
	    type: String
	  - name: createdTime
	    type: Integer
*/
package proofs

/*
Contract storage model.

Current conventions:
 <hash>: report hash as it was passed to UpdateProof (IPFS CID string)

# Summary
Key-value storage format:
 - 'config' -> std.Serialize(Configuration)
   owner script hash and base IPFS link
 - 'p<hash>' -> std.Serialize(ProofRecord)
   proof of the report

# Proofs
Proofs are never removed. Registering the same report hash again replaces
the whole record. Report links are not rebuilt when the base IPFS link
changes.
*/
