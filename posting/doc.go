/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

// Package posting takes care of positional posting lists. Every term of an
// index owns one List, holding the documents the term occurs in and the
// encoded positions of every occurrence.
package posting
